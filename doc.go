// Package framekit provides file-level utilities for still images and video
// frames: PNG to JPEG conversion, directory scans for images, frame
// extraction from videos and side-by-side merging of two frames.
//
// Image codecs are Go's (plus golang.org/x/image for BMP and TIFF). Videos
// are decoded by an external ffmpeg process, so ffmpeg and ffprobe must be
// installed for the video operations.
//
// All operations are synchronous. A Toolkit holds no mutable state and may
// be shared between goroutines.
package framekit
