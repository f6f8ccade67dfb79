// Package media provides image and video processing capabilities.
package media

import (
	"context"
	"image"
)

// VideoInfo describes the first video stream of a container.
type VideoInfo struct {
	Width  int
	Height int
	// FPS is the average frame rate, 0 when the container does not report one.
	FPS float64
	// FrameCount is the number of frames recorded in the container
	// metadata. It is 0 when the container does not store it.
	FrameCount int
}

// VideoDecoder defines the video operations the toolkit needs.
// Implementations should use ffmpeg or similar tools for decoding.
type VideoDecoder interface {
	// Probe returns stream metadata without decoding any frames.
	Probe(ctx context.Context, path string) (VideoInfo, error)

	// OpenVideo opens a video for sequential, forward-only frame reading.
	// The caller must Release the returned reader on every path.
	OpenVideo(ctx context.Context, path string) (FrameReader, error)
}

// FrameReader is an opened video with a single read cursor.
type FrameReader interface {
	// Info returns the metadata probed when the video was opened.
	Info() VideoInfo

	// Read decodes the next frame. It returns false once the stream is
	// exhausted or a frame could not be read; Err tells the two apart.
	Read() (*image.RGBA, bool)

	// Err returns the error that ended reading, or nil on a clean end of stream.
	Err() error

	// Release stops decoding and frees the underlying resources.
	// It is safe to call more than once.
	Release() error
}
