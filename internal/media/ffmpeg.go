package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

// Static errors for media operations.
var (
	// ErrFFprobeExecution is returned when ffprobe command fails.
	ErrFFprobeExecution = errors.New("ffprobe execution failed")
	// ErrNoVideoStream is returned when a container has no video stream.
	ErrNoVideoStream = errors.New("no video stream found")
)

// FFmpegProcessor implements VideoDecoder using the ffmpeg and ffprobe CLIs.
type FFmpegProcessor struct {
	// ffmpegPath is the path to the ffmpeg binary. Defaults to "ffmpeg".
	ffmpegPath string
	// ffprobePath is the path to the ffprobe binary. Defaults to "ffprobe".
	ffprobePath string
}

// NewFFmpegProcessor creates a new FFmpegProcessor.
// Empty paths default to "ffmpeg" and "ffprobe" (found via PATH).
func NewFFmpegProcessor(ffmpegPath, ffprobePath string) *FFmpegProcessor {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &FFmpegProcessor{ffmpegPath: ffmpegPath, ffprobePath: ffprobePath}
}

// probeOutput mirrors the subset of `ffprobe -of json` we request.
type probeOutput struct {
	Streams []struct {
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		AvgFrameRate string `json:"avg_frame_rate"`
		RFrameRate   string `json:"r_frame_rate"`
		NbFrames     string `json:"nb_frames"`
	} `json:"streams"`
}

// Probe returns the dimensions, frame rate and recorded frame count of the
// first video stream in path.
func (p *FFmpegProcessor) Probe(ctx context.Context, path string) (VideoInfo, error) {
	// #nosec G204 - ffprobePath is set by the application, not user input
	cmd := exec.CommandContext(ctx, p.ffprobePath,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,avg_frame_rate,r_frame_rate,nb_frames",
		"-of", "json",
		path,
	)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return VideoInfo{}, fmt.Errorf("ffprobe cancelled: %w", ctx.Err())
		}
		return VideoInfo{}, fmt.Errorf("%w: %w, stderr: %s", ErrFFprobeExecution, err, strings.TrimSpace(stderr.String()))
	}

	var out probeOutput
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		return VideoInfo{}, fmt.Errorf("parse ffprobe output: %w", err)
	}
	if len(out.Streams) == 0 {
		return VideoInfo{}, fmt.Errorf("%w: %s", ErrNoVideoStream, path)
	}

	s := out.Streams[0]
	info := VideoInfo{
		Width:  s.Width,
		Height: s.Height,
		FPS:    parseFrameRate(s.AvgFrameRate),
	}
	if info.FPS == 0 {
		info.FPS = parseFrameRate(s.RFrameRate)
	}
	if n, err := strconv.Atoi(s.NbFrames); err == nil {
		info.FrameCount = n
	}
	return info, nil
}

// parseFrameRate converts ffprobe's "num/den" notation to frames per second.
func parseFrameRate(rate string) float64 {
	num, den, found := strings.Cut(rate, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if !found {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}

// OpenVideo probes path and starts an ffmpeg process that streams raw
// rgb24 frames on its stdout. Cancelling ctx kills the process.
func (p *FFmpegProcessor) OpenVideo(ctx context.Context, path string) (FrameReader, error) {
	info, err := p.Probe(ctx, path)
	if err != nil {
		return nil, err
	}
	if info.Width <= 0 || info.Height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, info.Width, info.Height)
	}

	args := []string{
		"-nostdin",
		"-v", "error",
		"-noautorotate", // Keep the probed coded size
		"-i", path,
		"-map", "0:v:0",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-",
	}

	decodeCtx, cancel := context.WithCancel(ctx)
	// #nosec G204 - ffmpegPath is set by the application, not user input
	cmd := exec.CommandContext(decodeCtx, p.ffmpegPath, args...)

	c := &VideoCapture{
		info:   info,
		parent: ctx,
		cancel: cancel,
		cmd:    cmd,
		args:   args,
		buf:    make([]byte, info.Width*info.Height*3),
	}
	cmd.Stderr = &c.stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("ffmpeg stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, &FFmpegError{Args: args, Err: err}
	}
	c.stdout = stdout

	return c, nil
}

// VideoCapture is a FrameReader backed by a running ffmpeg process.
type VideoCapture struct {
	info   VideoInfo
	parent context.Context
	cancel context.CancelFunc
	cmd    *exec.Cmd
	args   []string
	stdout io.ReadCloser
	stderr bytes.Buffer

	buf      []byte
	index    int
	done     bool
	released bool
	err      error
}

// Info returns the metadata probed when the video was opened.
func (c *VideoCapture) Info() VideoInfo {
	return c.info
}

// Read decodes the next frame into a new RGBA image.
func (c *VideoCapture) Read() (*image.RGBA, bool) {
	if c.done || c.released {
		return nil, false
	}

	if _, err := io.ReadFull(c.stdout, c.buf); err != nil {
		c.done = true
		if !errors.Is(err, io.EOF) {
			c.err = fmt.Errorf("read frame %d: %w", c.index, err)
		}
		return nil, false
	}

	c.index++
	return rgb24ToRGBA(c.buf, c.info.Width, c.info.Height), true
}

// Err returns the error that ended reading, or nil.
func (c *VideoCapture) Err() error {
	return c.err
}

// Release stops the decoder and waits for it to exit. Stopping a decoder
// before end of stream is not an error.
func (c *VideoCapture) Release() error {
	if c.released {
		return nil
	}
	c.released = true

	stoppedEarly := !c.done
	if stoppedEarly {
		c.cancel()
	}
	err := c.cmd.Wait()
	c.cancel()

	if c.parent.Err() != nil {
		return fmt.Errorf("ffmpeg cancelled: %w", c.parent.Err())
	}
	if err == nil || stoppedEarly {
		return nil
	}
	return &FFmpegError{
		Args:   c.args,
		Stderr: c.stderr.String(),
		Err:    err,
	}
}

// rgb24ToRGBA expands packed RGB samples to an opaque RGBA image.
func rgb24ToRGBA(src []byte, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, j := 0, 0; i+2 < len(src); i, j = i+3, j+4 {
		img.Pix[j] = src[i]
		img.Pix[j+1] = src[i+1]
		img.Pix[j+2] = src[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

// FFmpegError represents an error from running ffmpeg, including the stderr output.
type FFmpegError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *FFmpegError) Error() string {
	return fmt.Sprintf("ffmpeg error: %v\nargs: %v\nstderr: %s", e.Err, e.Args, e.Stderr)
}

func (e *FFmpegError) Unwrap() error {
	return e.Err
}
