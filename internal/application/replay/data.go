package replay

import (
	"github.com/younwookim/skirmish/internal/application/system"
)

// Version is written into every saved replay
const Version = "2.0"

// FrameInput records input state for a single tick
type FrameInput struct {
	F   int  `json:"f" msgpack:"f"`                       // Frame number
	L   bool `json:"l,omitempty" msgpack:"l,omitempty"`   // Left
	R   bool `json:"r,omitempty" msgpack:"r,omitempty"`   // Right
	U   bool `json:"u,omitempty" msgpack:"u,omitempty"`   // Up
	D   bool `json:"d,omitempty" msgpack:"d,omitempty"`   // Down
	J   bool `json:"j,omitempty" msgpack:"j,omitempty"`   // Jump
	TA  bool `json:"ta,omitempty" msgpack:"ta,omitempty"` // ToggleAim
	FR  bool `json:"fr,omitempty" msgpack:"fr,omitempty"` // Fire
	NA  bool `json:"na,omitempty" msgpack:"na,omitempty"` // NextAbility
	PA  bool `json:"pa,omitempty" msgpack:"pa,omitempty"` // PrevAbility
	SS  int  `json:"ss,omitempty" msgpack:"ss,omitempty"` // SelectSlot
	MX  int  `json:"mx" msgpack:"mx"`                     // PointerX
	MY  int  `json:"my" msgpack:"my"`                     // PointerY
	Sk  bool `json:"sk,omitempty" msgpack:"sk,omitempty"` // SkipLevel
}

// ReplayData contains all data needed to replay a campaign
type ReplayData struct {
	Version   string       `json:"version" msgpack:"version"`
	MatchID   string       `json:"matchId" msgpack:"matchId"`
	Seed      int64        `json:"seed" msgpack:"seed"`
	Class     string       `json:"class" msgpack:"class"`
	StartTime string       `json:"startTime" msgpack:"startTime"`
	Frames    []FrameInput `json:"frames" msgpack:"frames"`
}

// Frame is one recorded tick: the player's input plus the campaign-level
// commands issued on it.
type Frame struct {
	Input     system.InputSnapshot
	SkipLevel bool
}

func toFrameInput(n int, f Frame) FrameInput {
	in := f.Input
	return FrameInput{
		F:  n,
		L:  in.Left,
		R:  in.Right,
		U:  in.Up,
		D:  in.Down,
		J:  in.Jump,
		TA: in.ToggleAim,
		FR: in.Fire,
		NA: in.NextAbility,
		PA: in.PrevAbility,
		SS: in.SelectSlot,
		MX: in.PointerX,
		MY: in.PointerY,
		Sk: f.SkipLevel,
	}
}

func (fi FrameInput) frame() Frame {
	return Frame{
		Input: system.InputSnapshot{
			Left:        fi.L,
			Right:       fi.R,
			Up:          fi.U,
			Down:        fi.D,
			Jump:        fi.J,
			ToggleAim:   fi.TA,
			Fire:        fi.FR,
			NextAbility: fi.NA,
			PrevAbility: fi.PA,
			SelectSlot:  fi.SS,
			PointerX:    fi.MX,
			PointerY:    fi.MY,
		},
		SkipLevel: fi.Sk,
	}
}
