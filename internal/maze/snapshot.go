package maze

// Snapshot is a serialisable copy of the engine state.
type Snapshot struct {
	Grid       Grid       `json:"grid"`
	Player     Cell       `json:"player"`
	Goal       Cell       `json:"goal"`
	Walls      []Cell     `json:"walls,omitempty"`
	WallCount  int        `json:"wall_count"`
	Difficulty Difficulty `json:"difficulty"`
	Completed  bool       `json:"completed"`
	Moves      int        `json:"moves"`
	Status     Status     `json:"status"`
	Message    string     `json:"message"`
}

// Snapshot captures the current state. Wall positions are only included
// when withWalls is set, since the game normally keeps them hidden.
func (e *Engine) Snapshot(withWalls bool) Snapshot {
	s := Snapshot{
		Grid:       e.grid,
		Player:     e.player,
		Goal:       e.goal,
		WallCount:  e.walls.Len(),
		Difficulty: e.difficulty,
		Completed:  e.completed,
		Moves:      e.moves,
		Status:     e.Status(),
		Message:    e.Message(),
	}
	if withWalls {
		s.Walls = e.walls.Cells()
	}
	return s
}
