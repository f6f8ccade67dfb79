package framekit

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/anthonynsimon/bild/transform"

	"github.com/maauso/framekit/internal/bootstrap"
	"github.com/maauso/framekit/internal/config"
	"github.com/maauso/framekit/internal/media"
	"github.com/maauso/framekit/internal/storage"
)

// Config holds the toolkit settings. See DefaultConfig.
type Config = config.Config

// VideoInfo describes the first video stream of a container.
type VideoInfo = media.VideoInfo

// DimensionMismatchError is returned when two images of different heights
// are concatenated.
type DimensionMismatchError = media.DimensionMismatchError

// FFmpegError carries the arguments and stderr of a failed ffmpeg run.
type FFmpegError = media.FFmpegError

// Errors returned by the toolkit.
var (
	// ErrOpenVideo is returned when a video cannot be opened or probed.
	ErrOpenVideo = errors.New("unable to open video file")
	// ErrFirstFrame is returned when the first frame of a video cannot be read.
	ErrFirstFrame = errors.New("unable to read the first frame")
	// ErrDecodeFrame is returned when an extracted frame cannot be decoded again.
	ErrDecodeFrame = errors.New("unable to read extracted frame")
	// ErrNotPNG is returned when a conversion input is not PNG-encoded.
	ErrNotPNG = errors.New("not a PNG file")
	// ErrNotImageFile is returned when a file's extension is not an accepted image extension.
	ErrNotImageFile = errors.New("not a valid image file")
	// ErrNoImageFound is returned when a directory holds no image file.
	ErrNoImageFound = errors.New("no image file found")
	// ErrNotDirectory is returned when a path expected to be a directory is not one.
	ErrNotDirectory = errors.New("not a directory")

	ErrDimensionMismatch = media.ErrDimensionMismatch
	ErrInvalidDimensions = media.ErrInvalidDimensions
	ErrUnsupportedFormat = media.ErrUnsupportedFormat
	ErrFFprobeExecution  = media.ErrFFprobeExecution
	ErrS3NotConfigured   = storage.ErrS3NotConfigured
	ErrInvalidConfig     = config.ErrInvalidConfig
)

// Size is a (width, height) pair in pixels.
type Size struct {
	Width  int
	Height int
}

// DefaultConfig returns the default settings: JPEG quality 75, linear
// resizing, black background, 320x480 frames, temp files under
// /tmp/framekit and no S3.
func DefaultConfig() *Config {
	return config.Default()
}

// Toolkit runs the image and video operations.
type Toolkit struct {
	codec      *media.Codec
	video      media.VideoDecoder
	store      storage.Storage
	filter     transform.ResampleFilter
	background color.RGBA
	frameSize  Size
	logger     *slog.Logger
}

type settings struct {
	cfg    *Config
	logger *slog.Logger
	store  storage.Storage
	video  media.VideoDecoder
}

// Option configures a Toolkit.
type Option func(*settings)

// WithConfig replaces the default configuration.
func WithConfig(cfg *Config) Option {
	return func(s *settings) {
		s.cfg = cfg
	}
}

// WithLogger sets the logger. Nil means slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithStorage replaces the storage built from the configuration.
func WithStorage(store storage.Storage) Option {
	return func(s *settings) {
		s.store = store
	}
}

// WithVideoDecoder replaces the ffmpeg-backed video decoder.
func WithVideoDecoder(video media.VideoDecoder) Option {
	return func(s *settings) {
		s.video = video
	}
}

// New creates a Toolkit. Without WithConfig it uses DefaultConfig and
// does not read the environment.
func New(opts ...Option) (*Toolkit, error) {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}
	if s.cfg == nil {
		s.cfg = DefaultConfig()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	deps, err := bootstrap.NewDependencies(s.cfg, s.logger)
	if err != nil {
		return nil, fmt.Errorf("initialize dependencies: %w", err)
	}
	if s.store != nil {
		deps.Store = s.store
	}
	if s.video != nil {
		deps.Video = s.video
	}

	return &Toolkit{
		codec:      deps.Codec,
		video:      deps.Video,
		store:      deps.Store,
		filter:     deps.Filter,
		background: deps.Background,
		frameSize:  Size{Width: s.cfg.FrameWidth, Height: s.cfg.FrameHeight},
		logger:     s.logger,
	}, nil
}

// NewFromEnv loads the configuration from environment variables and
// creates a Toolkit logging through the configured handler. Options are
// applied after the environment, so WithLogger still wins.
func NewFromEnv(opts ...Option) (*Toolkit, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	base := []Option{WithConfig(cfg), WithLogger(cfg.NewLogger())}
	return New(append(base, opts...)...)
}

// FrameSize returns the default target size used by VideoToImages.
func (t *Toolkit) FrameSize() Size {
	return t.frameSize
}
