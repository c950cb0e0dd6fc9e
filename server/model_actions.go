package server

import (
	"encoding/gob"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/stealth/model"
	"github.com/zucenko/stealth/sim"
	"github.com/zucenko/stealth/store"
)

const connectTimeout = 2 * time.Second

func NewGameServer(cfg sim.Config, st *store.SQLiteStore) *GameServer {
	return &GameServer{
		Config: cfg,
		Store:  st,
		Rand: func() sim.RandSource {
			return sim.NewRand(time.Now().UnixNano())
		},
		GameSessions: make(map[int]*GameSession),
		GameRequests: make(chan GameRequest),
		Ended:        make(chan int, ENDED_BUFFER),
		Upgrader:     &websocket.Upgrader{},
		quit:         make(chan struct{}),
	}
}

func (s *GameServer) HandleHttpCall() http.HandlerFunc {
	timeout := 200 * time.Millisecond
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("HandleHttpCall - connection received")

		gcas := make(chan GameContextAwaiting, 1)
		select {
		case s.GameRequests <- GameRequest{GameContextAwaiting: gcas}:
		case <-time.After(timeout):
			log.Warn("GameRequests TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		var gca GameContextAwaiting
		select {
		case gca = <-gcas:
			if gca.ResponseCode != GAME_READY {
				log.Warnf("HandleHttpCall refused code:%d", gca.ResponseCode)
				w.WriteHeader(gca.ResponseCode.ToHttp())
				return
			}
		case <-time.After(timeout):
			log.Warnf("HandleHttpCall GameContextAwaiting <- TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already answered the request.
			log.Warnf("HandleHttpCall websocket upgrade err %v", err)
			return
		}
		defer con.Close()

		gameOver := make(chan struct{})
		select {
		case gca.GameSession.PlayerConnectRequests <- PlayerConnectRequest{
			Con:      con,
			GameOver: gameOver}:
		case <-time.After(timeout):
			log.Warnf("HandleHttpCall PlayerConnectRequests TIMEOUTED session:%d", gca.GameSession.Id)
			return
		}

		<-gameOver
		log.Infof("HandleHttpCall session:%d over", gca.GameSession.Id)
	}
}

// HandleScores serves the best finished missions as JSON.
func (s *GameServer) HandleScores() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Store == nil {
			w.WriteHeader(HTTP_NOT_FOUND)
			return
		}
		limit := DEFAULT_SCORES_LIMIT
		if q := r.URL.Query().Get("limit"); q != "" {
			n, err := strconv.Atoi(q)
			if err != nil || n <= 0 {
				w.WriteHeader(HTTP_BAD_REQUEST)
				return
			}
			limit = n
		}
		if limit > MAX_SCORES_LIMIT {
			limit = MAX_SCORES_LIMIT
		}
		scores, err := s.Store.Top(r.Context(), limit)
		if err != nil {
			log.Errorf("HandleScores %v", err)
			w.WriteHeader(HTTP_SERVER_ERR)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(scores); err != nil {
			log.Warnf("HandleScores encode %v", err)
		}
	}
}

func (s *GameServer) Loop() {
	log.Printf("GameServer.Loop starting")
	for {
		select {
		case <-s.quit:
			log.Printf("GameServer.Loop stopped")
			return
		case gameReq := <-s.GameRequests:
			if s.MaxSessions > 0 && len(s.GameSessions) >= s.MaxSessions {
				log.Warnf("GameServer.Loop full, %d sessions", len(s.GameSessions))
				gameReq.GameContextAwaiting <- GameContextAwaiting{ResponseCode: GAME_FULL}
				continue
			}
			gs := s.newGameSession()
			s.GameSessions[gs.Id] = gs
			go gs.Loop()
			gameReq.GameContextAwaiting <- GameContextAwaiting{
				ResponseCode: GAME_READY,
				GameSession:  gs,
			}
		case id := <-s.Ended:
			delete(s.GameSessions, id)
			log.Infof("GameServer.Loop session:%d removed, %d left", id, len(s.GameSessions))
		}
	}
}

func (s *GameServer) Stop() {
	close(s.quit)
}

func (s *GameServer) newGameSession() *GameSession {
	s.nextId++
	gs := &GameSession{
		Id:                    s.nextId,
		State:                 GS_NEW,
		Events:                make(chan model.ClientMessage, EVENTS_BUFFER),
		Calls:                 make(chan func()),
		Errors:                make(chan error),
		PlayerConnectRequests: make(chan PlayerConnectRequest),
		Ended:                 s.Ended,
		store:                 s.Store,
		quit:                  make(chan struct{}),
		serverQuit:            s.quit,
	}
	clock := sim.NewTickerClock(s.Config.TickInterval(), gs.dispatch)
	gs.Game = sim.NewGame(s.Config, clock, s.Rand())
	gs.Game.SetLogger(log.WithField("session", gs.Id))
	gs.Game.OnChange(func(snap model.Session) {
		gs.send(model.ServerMessage{Snapshots: []model.Session{snap}})
	})
	gs.Game.OnResult(func(r model.Result) {
		gs.send(model.ServerMessage{Results: []model.Result{r}})
		gs.store.Record(r)
	})
	return gs
}

// dispatch hands a clock tick to Loop, or drops it once the session ended.
func (gs *GameSession) dispatch(fn func()) {
	select {
	case gs.Calls <- fn:
	case <-gs.quit:
	}
}

func (gs *GameSession) Loop() {
	logger := log.WithField("session", gs.Id)
	logger.Info("GameSession.Loop start")
	defer gs.teardown()

	connect := time.After(connectTimeout)
	for {
		select {
		case <-connect:
			logger.Warn("GameSession.Loop no player connected")
			gs.State = GS_OVER
			return
		case pcr := <-gs.PlayerConnectRequests:
			connect = nil
			gs.addPlayer(pcr.Con, pcr.GameOver)
			gs.State = GS_PLAY
			gs.send(model.ServerMessage{Snapshots: []model.Session{gs.Game.Snapshot()}})
		case cm := <-gs.Events:
			gs.handle(cm)
		case fn := <-gs.Calls:
			fn()
		case err := <-gs.Errors:
			logger.Warnf("GameSession.Loop ending: %v", err)
			gs.State = GS_ERR
			return
		}
	}
}

func (gs *GameSession) handle(cm model.ClientMessage) {
	if cm.Start {
		gs.Game.StartSession()
		return
	}
	d, ok := cm.Direction()
	if !ok {
		log.WithField("session", gs.Id).Warnf("ignoring move %d", cm.Move)
		return
	}
	gs.Game.MovePlayer(d)
}

func (gs *GameSession) teardown() {
	gs.Game.Close()
	close(gs.quit)
	if gs.PlayerSession != nil {
		gs.PlayerSession.State = PS_OVER
		close(gs.PlayerSession.GameOver)
	}
	// nobody reads Ended once the server loop stopped
	select {
	case gs.Ended <- gs.Id:
	case <-gs.serverQuit:
	}
}

func (gs *GameSession) send(m model.ServerMessage) {
	if gs.PlayerSession == nil {
		return
	}
	select {
	case gs.PlayerSession.MessagesToSend <- m:
	default:
		log.WithField("session", gs.Id).Warn("dropping message, MessagesToSend FULL")
	}
}

func (gs *GameSession) fail(err error) {
	select {
	case gs.Errors <- err:
	case <-gs.quit:
	}
}

func (gs *GameSession) addPlayer(conn *websocket.Conn, gameOver chan struct{}) {
	ps := &PlayerSession{
		State:          PS_NEW,
		GameSession:    gs,
		Conn:           conn,
		GameOver:       gameOver,
		MessagesToSend: make(chan model.ServerMessage, MESSAGES_BUFFER),
	}
	conn.SetPingHandler(
		func(message string) error {
			err := conn.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
			ps.DebugLastPing = time.Now()
			ps.DebugPings++
			if err == websocket.ErrCloseSent {
				return nil
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				return nil
			}
			return err
		})
	gs.PlayerSession = ps
	ps.State = PS_PLAY
	go ps.LoopChannelRead()
	go ps.LoopChannelWrite()
}

func (ps *PlayerSession) LoopChannelRead() {
	gs := ps.GameSession
	for {
		_, r, err := ps.Conn.NextReader()
		if err != nil {
			gs.fail(err)
			return
		}
		cm := model.ClientMessage{}
		if err := gob.NewDecoder(r).Decode(&cm); err != nil {
			gs.fail(err)
			return
		}
		ps.DebugLastMessage = time.Now()
		ps.DebugInMessages++

		select {
		case gs.Events <- cm:
		case <-gs.quit:
			return
		default:
			log.WithField("session", gs.Id).Warn("dropping input, Events FULL")
		}
	}
}

// LoopChannelWrite is the only writer of data frames on Conn.
func (ps *PlayerSession) LoopChannelWrite() {
	gs := ps.GameSession
	for {
		select {
		case <-gs.quit:
			return
		case mes := <-ps.MessagesToSend:
			w, err := ps.Conn.NextWriter(websocket.BinaryMessage)
			if err != nil {
				gs.fail(err)
				return
			}
			if err := gob.NewEncoder(w).Encode(mes); err != nil {
				gs.fail(err)
				return
			}
			if err := w.Close(); err != nil {
				gs.fail(err)
				return
			}
			ps.DebugOutMessages++
		}
	}
}
