package web

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/gridmaze/internal/maze"
	"github.com/vovakirdan/gridmaze/internal/storage"
)

const (
	defaultRecordsLimit = 10
	maxRecordsLimit     = 100
)

type createRequest struct {
	Player     string `json:"player"`
	Difficulty string `json:"difficulty"`
}

type moveRequest struct {
	Direction string `json:"direction" binding:"required"`
}

type difficultyRequest struct {
	Difficulty string `json:"difficulty" binding:"required"`
}

// gameResponse is the body of every game endpoint.
type gameResponse struct {
	ID     string           `json:"id"`
	State  maze.Snapshot    `json:"state"`
	Result *maze.MoveResult `json:"result,omitempty"`
}

func errorJSON(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// bindOptionalJSON binds a JSON body, treating an empty body as no fields.
func bindOptionalJSON(c *gin.Context, v any) error {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return nil
	}
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (s *Server) showWalls() bool {
	return s.config.Maze.Render.ShowWalls
}

// session looks up the :id parameter, writing a 404 when it is unknown.
func (s *Server) session(c *gin.Context) (*Session, bool) {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		errorJSON(c, http.StatusNotFound, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) handleCreate(c *gin.Context) {
	var req createRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}

	var d maze.Difficulty
	if req.Difficulty != "" {
		var err error
		if d, err = maze.ParseDifficulty(req.Difficulty); err != nil {
			errorJSON(c, http.StatusBadRequest, err)
			return
		}
	}

	sess := s.sessions.Create(req.Player, d)
	state := sess.State(s.showWalls())
	s.logger.Info("session created", "session", sess.ID, "player", req.Player, "difficulty", state.Difficulty)

	c.JSON(http.StatusCreated, gameResponse{ID: sess.ID, State: state})
}

func (s *Server) handleGet(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gameResponse{ID: sess.ID, State: sess.State(s.showWalls())})
}

func (s *Server) handleDelete(c *gin.Context) {
	id := c.Param("id")
	if !s.sessions.Delete(id) {
		errorJSON(c, http.StatusNotFound, ErrSessionNotFound)
		return
	}
	s.hub.CloseSession(id)
	s.logger.Info("session deleted", "session", id)
	c.Status(http.StatusNoContent)
}

func (s *Server) handleMove(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}

	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}
	d, err := maze.ParseDirection(req.Direction)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}

	s.respond(c, sess, sess.Move(d, s.showWalls()))
}

func (s *Server) handleDifficulty(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}

	var req difficultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}
	d, err := maze.ParseDifficulty(req.Difficulty)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}

	s.respond(c, sess, sess.SetDifficulty(d, s.showWalls()))
}

func (s *Server) handleRestart(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	s.respond(c, sess, sess.Restart(s.showWalls()))
}

// respond records a finished run, pushes the new state to the session's
// sockets and writes it to the caller.
func (s *Server) respond(c *gin.Context, sess *Session, out Outcome) {
	s.afterTransition(sess, out)
	c.JSON(http.StatusOK, gameResponse{ID: sess.ID, State: out.State, Result: &out.Result})
}

func (s *Server) afterTransition(sess *Session, out Outcome) {
	if out.Run != nil {
		s.logger.Info("maze solved", "session", sess.ID, "difficulty", out.Run.Difficulty, "moves", out.Run.Moves)
		if s.store != nil {
			if _, err := s.store.SaveRun(*out.Run); err != nil {
				s.logger.Warn("could not save run", "session", sess.ID, "error", err)
			}
		}
	}
	s.hub.Broadcast(sess.ID, serverMessage{Type: "state", ID: sess.ID, State: &out.State, Result: &out.Result})
}

func (s *Server) handleRecords(c *gin.Context) {
	if s.store == nil {
		errorJSON(c, http.StatusServiceUnavailable, errors.New("web: run storage is not available"))
		return
	}

	difficulty := c.Query("difficulty")
	if difficulty != "" {
		d, err := maze.ParseDifficulty(difficulty)
		if err != nil {
			errorJSON(c, http.StatusBadRequest, err)
			return
		}
		difficulty = string(d)
	}

	limit := defaultRecordsLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			errorJSON(c, http.StatusBadRequest, errors.New("web: limit must be a positive integer"))
			return
		}
		limit = min(n, maxRecordsLimit)
	}

	runs, err := s.store.TopRuns(difficulty, limit)
	if err != nil {
		s.logger.Error("cannot load runs", "error", err)
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}
	if runs == nil {
		runs = []storage.Run{}
	}
	c.JSON(http.StatusOK, gin.H{"difficulty": difficulty, "runs": runs})
}

// handleWebSocket upgrades the request and streams the session's state.
// The first message is the current state; each client event is applied and
// the result broadcast to every socket of the session.
func (s *Server) handleWebSocket(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "session", sess.ID, "error", err)
		return
	}

	cl := &client{
		hub:       s.hub,
		conn:      conn,
		send:      make(chan []byte, 256),
		sessionID: sess.ID,
	}
	s.hub.register(cl)

	state := sess.State(s.showWalls())
	s.hub.sendTo(cl, serverMessage{Type: "state", ID: sess.ID, State: &state})

	go cl.writePump()
	go cl.readPump(func(msg clientMessage) {
		s.handleClientMessage(sess, cl, msg)
	})
}

func (s *Server) handleClientMessage(sess *Session, cl *client, msg clientMessage) {
	var out Outcome
	switch msg.Type {
	case "move":
		d, err := maze.ParseDirection(msg.Direction)
		if err != nil {
			s.hub.sendTo(cl, serverMessage{Type: "error", ID: sess.ID, Error: err.Error()})
			return
		}
		out = sess.Move(d, s.showWalls())
	case "difficulty":
		d, err := maze.ParseDifficulty(msg.Difficulty)
		if err != nil {
			s.hub.sendTo(cl, serverMessage{Type: "error", ID: sess.ID, Error: err.Error()})
			return
		}
		out = sess.SetDifficulty(d, s.showWalls())
	case "restart":
		out = sess.Restart(s.showWalls())
	case "state":
		state := sess.State(s.showWalls())
		s.hub.sendTo(cl, serverMessage{Type: "state", ID: sess.ID, State: &state})
		return
	default:
		s.hub.sendTo(cl, serverMessage{Type: "error", ID: sess.ID, Error: "unknown message type " + strconv.Quote(msg.Type)})
		return
	}
	s.afterTransition(sess, out)
}
