package framekit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maauso/framekit/internal/media"
)

// MergeFramesAndSave takes the first frame of each video and writes them
// side by side to outputPath: video1's frame on the left at its native
// size, video2's frame on the right, resized to the same width and height.
//
// The frames go through temporary JPEG files that are unique to each call
// and removed afterwards, so concurrent calls do not interfere.
func (t *Toolkit) MergeFramesAndSave(ctx context.Context, video1, video2, outputPath string) error {
	tmp1 := t.store.TempPath("first_frame_1", ".jpg")
	tmp2 := t.store.TempPath("first_frame_2", ".jpg")
	defer func() {
		if err := t.store.CleanupTemp(context.WithoutCancel(ctx), []string{tmp1, tmp2}); err != nil {
			t.logger.Warn("failed to remove temporary frames", slog.String("error", err.Error()))
		}
	}()

	if err := t.ExtractFirstFrame(ctx, video1, tmp1); err != nil {
		return err
	}
	if err := t.ExtractFirstFrame(ctx, video2, tmp2); err != nil {
		return err
	}

	frame1, _, err := t.codec.Open(tmp1)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecodeFrame, err)
	}
	frame2, _, err := t.codec.Open(tmp2)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecodeFrame, err)
	}

	b := frame1.Bounds()
	resized, err := media.Resize(frame2, b.Dx(), b.Dy(), t.filter)
	if err != nil {
		return err
	}

	merged, err := media.ConcatHorizontal(frame1, resized)
	if err != nil {
		return err
	}
	if err := t.codec.Save(merged, outputPath); err != nil {
		return fmt.Errorf("save merged image: %w", err)
	}

	t.logger.Info("merged image saved",
		slog.String("output", outputPath),
		slog.Int("width", merged.Bounds().Dx()),
		slog.Int("height", merged.Bounds().Dy()),
	)
	return nil
}

// MergeFrames writes firstFramePath and lastFramePath side by side to
// outputPath without resizing. The two images must have the same height;
// otherwise a *DimensionMismatchError is returned and nothing is written.
func (t *Toolkit) MergeFrames(firstFramePath, lastFramePath, outputPath string) error {
	first, _, err := t.codec.Open(firstFramePath)
	if err != nil {
		return err
	}
	last, _, err := t.codec.Open(lastFramePath)
	if err != nil {
		return err
	}

	merged, err := media.ConcatHorizontal(first, last)
	if err != nil {
		return err
	}
	if err := t.codec.Save(merged, outputPath); err != nil {
		return fmt.Errorf("save merged image: %w", err)
	}

	t.logger.Info("merged image saved", slog.String("output", outputPath))
	return nil
}
