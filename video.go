package framekit

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/maauso/framekit/internal/media"
)

// frameFileName names the index-th extracted frame. Zero padding keeps
// lexical order equal to capture order.
func frameFileName(index int) string {
	return fmt.Sprintf("frame_%05d.jpg", index)
}

// ProbeVideo returns the dimensions, frame rate and recorded frame count
// of the first video stream in videoPath.
func (t *Toolkit) ProbeVideo(ctx context.Context, videoPath string) (VideoInfo, error) {
	info, err := t.video.Probe(ctx, videoPath)
	if err != nil {
		return VideoInfo{}, fmt.Errorf("%w: %s: %w", ErrOpenVideo, videoPath, err)
	}
	return info, nil
}

// VideoToImages writes every frame of videoPath into outputFolder as
// frame_00000.jpg, frame_00001.jpg and so on, each resized to exactly size
// regardless of the source aspect ratio. A zero size means FrameSize().
// outputFolder must already exist.
//
// Reading stops at the first frame that cannot be read; a decode failure
// in the middle of the stream ends extraction the same way as the end of
// the stream and is only logged. It returns the number of frames written.
func (t *Toolkit) VideoToImages(ctx context.Context, videoPath, outputFolder string, size Size) (int, error) {
	if size == (Size{}) {
		size = t.frameSize
	}
	if size.Width <= 0 || size.Height <= 0 {
		return 0, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, size.Width, size.Height)
	}

	capture, err := t.video.OpenVideo(ctx, videoPath)
	if err != nil {
		t.logger.Error("unable to open video file",
			slog.String("video", videoPath),
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("%w: %s: %w", ErrOpenVideo, videoPath, err)
	}
	defer t.release(capture, videoPath)

	count := 0
	for {
		frame, ok := capture.Read()
		if !ok {
			break
		}

		resized, err := media.Resize(frame, size.Width, size.Height, t.filter)
		if err != nil {
			return count, err
		}

		path := filepath.Join(outputFolder, frameFileName(count))
		if err := t.codec.Save(resized, path); err != nil {
			return count, fmt.Errorf("write frame %d: %w", count, err)
		}
		count++
	}

	if err := ctx.Err(); err != nil {
		return count, fmt.Errorf("video to images cancelled after %d frames: %w", count, err)
	}

	info := capture.Info()
	if cause := stopCause(capture); cause != nil {
		t.logger.Warn("video stream ended with an error",
			slog.String("video", videoPath),
			slog.Int("frames", count),
			slog.String("error", cause.Error()),
		)
	}

	t.logger.Info("video to images conversion completed",
		slog.String("video", videoPath),
		slog.String("output", outputFolder),
		slog.Int("frames", count),
		slog.Int("reported_frames", info.FrameCount),
		slog.Float64("fps", info.FPS),
	)
	return count, nil
}

// ExtractFirstFrame writes the first frame of videoPath to outputPath at
// its native resolution, encoded according to outputPath's extension.
// Nothing is written when the video cannot be opened (ErrOpenVideo) or its
// first frame cannot be read (ErrFirstFrame).
func (t *Toolkit) ExtractFirstFrame(ctx context.Context, videoPath, outputPath string) error {
	capture, err := t.video.OpenVideo(ctx, videoPath)
	if err != nil {
		t.logger.Error("unable to open video file",
			slog.String("video", videoPath),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%w: %s: %w", ErrOpenVideo, videoPath, err)
	}
	defer t.release(capture, videoPath)

	frame, ok := capture.Read()
	if !ok {
		t.logger.Error("unable to read the first frame", slog.String("video", videoPath))
		if cause := stopCause(capture); cause != nil {
			return fmt.Errorf("%w: %s: %w", ErrFirstFrame, videoPath, cause)
		}
		return fmt.Errorf("%w: %s", ErrFirstFrame, videoPath)
	}

	if err := t.codec.Save(frame, outputPath); err != nil {
		return fmt.Errorf("save first frame: %w", err)
	}

	t.logger.Debug("extracted first frame",
		slog.String("video", videoPath),
		slog.String("output", outputPath),
	)
	return nil
}

// stopCause releases an exhausted capture and returns why reading ended,
// or nil for a clean end of stream.
func stopCause(capture media.FrameReader) error {
	if err := capture.Err(); err != nil {
		return err
	}
	return capture.Release()
}

// release frees a capture, logging instead of returning failures.
func (t *Toolkit) release(capture media.FrameReader, videoPath string) {
	if err := capture.Release(); err != nil {
		t.logger.Debug("video release reported an error",
			slog.String("video", videoPath),
			slog.String("error", err.Error()),
		)
	}
}
