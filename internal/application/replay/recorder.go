package replay

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// ErrNoFrames is returned when saving an empty recording
var ErrNoFrames = errors.New("no frames to save")

// Recorder captures per-tick input for replay
type Recorder struct {
	data      ReplayData
	recording bool
	frame     int
}

// NewRecorder creates a recorder. The seed and class are everything a
// campaign needs besides the frames to play back identically.
func NewRecorder(matchID string, seed int64, class string) *Recorder {
	return &Recorder{
		data: ReplayData{
			Version:   Version,
			MatchID:   matchID,
			Seed:      seed,
			Class:     class,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]FrameInput, 0, 3600), // Pre-allocate for ~1 minute at 60fps
		},
		recording: true,
		frame:     0,
	}
}

// RecordFrame records a single tick
func (r *Recorder) RecordFrame(f Frame) {
	if !r.recording {
		return
	}

	r.data.Frames = append(r.data.Frames, toFrameInput(r.frame, f))
	r.frame++
}

// Save writes the recording, msgpack for ".mpk" files and JSON otherwise
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return ErrNoFrames
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := Encode(file, r.data, FormatFor(filename)); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// Data returns the recorded replay data
func (r *Recorder) Data() ReplayData {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename(format Format) string {
	return fmt.Sprintf("replay_%s%s", time.Now().Format("20060102_150405"), format.Ext())
}
