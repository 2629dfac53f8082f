package maze

import "github.com/vovakirdan/gridmaze/internal/core"

// actionDirections maps movement actions to engine directions.
var actionDirections = map[core.Action]Direction{
	core.ActionUp:    DirUp,
	core.ActionDown:  DirDown,
	core.ActionLeft:  DirLeft,
	core.ActionRight: DirRight,
}

// Apply runs the synchronous handler for one input action.
//
// Directions go through Move. Difficulty actions regenerate and reset.
// Restart is only honoured after the maze is completed, matching the restart
// affordance that appears on winning. Other actions leave the engine alone.
func (e *Engine) Apply(a core.Action) MoveResult {
	if d, ok := actionDirections[a]; ok {
		return e.Move(d)
	}

	switch a {
	case core.ActionEasy:
		e.SetDifficulty(DifficultyEasy)
	case core.ActionMedium:
		e.SetDifficulty(DifficultyMedium)
	case core.ActionHard:
		e.SetDifficulty(DifficultyHard)
	case core.ActionCycle:
		e.SetDifficulty(e.difficulty.Next())
	case core.ActionRestart:
		if e.completed {
			e.Restart()
		}
	}
	return MoveResult{From: e.player, To: e.player}
}
