package replay

// Replayer plays recorded frames back in order
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{
		data:  data,
		frame: 0,
	}
}

// Next returns the frame for the current tick and advances
func (r *Replayer) Next() (Frame, bool) {
	if r.frame >= len(r.data.Frames) {
		return Frame{}, false
	}

	fi := r.data.Frames[r.frame]
	r.frame++
	return fi.frame(), true
}

// Done reports whether every frame has been played
func (r *Replayer) Done() bool {
	return r.frame >= len(r.data.Frames)
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Seed returns the seed used for the replay
func (r *Replayer) Seed() int64 {
	return r.data.Seed
}

// Class returns the player class of the recorded campaign
func (r *Replayer) Class() string {
	return r.data.Class
}

// MatchID returns the id of the recorded campaign
func (r *Replayer) MatchID() string {
	return r.data.MatchID
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}
