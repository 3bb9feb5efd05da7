package tags

import "errors"

// ErrNotAudio is returned by Read for files that are not audio files.
var ErrNotAudio = errors.New("not an audio file")
