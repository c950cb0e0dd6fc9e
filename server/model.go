package server

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/zucenko/stealth/model"
	"github.com/zucenko/stealth/sim"
	"github.com/zucenko/stealth/store"
)

type GameServer struct {
	Config       sim.Config
	Store        *store.SQLiteStore
	Rand         func() sim.RandSource
	GameSessions map[int]*GameSession
	GameRequests chan GameRequest
	Ended        chan int
	Upgrader     *websocket.Upgrader
	MaxSessions  int
	nextId       int
	quit         chan struct{}
}

type GameSessionState int

const (
	GS_NEW GameSessionState = iota
	GS_PLAY
	GS_ERR
	GS_OVER
)

// GameSession hosts one player's game. Loop is the only goroutine touching
// Game; clock ticks reach it through Calls.
type GameSession struct {
	Id                    int
	State                 GameSessionState
	Game                  *sim.Game
	PlayerSession         *PlayerSession
	Events                chan model.ClientMessage
	Calls                 chan func()
	Errors                chan error
	PlayerConnectRequests chan PlayerConnectRequest
	Ended                 chan<- int
	store                 *store.SQLiteStore
	quit                  chan struct{}
	serverQuit            <-chan struct{}
}

type PlayerSessionState int

const (
	PS_NEW PlayerSessionState = iota + 1
	PS_PLAY
	PS_OVER
	PS_ERR
)

type PlayerSession struct {
	State       PlayerSessionState
	GameSession *GameSession
	Conn        *websocket.Conn
	GameOver    chan struct{}

	MessagesToSend chan model.ServerMessage

	DebugInMessages  int
	DebugOutMessages int
	DebugLastMessage time.Time
	DebugLastPing    time.Time
	DebugPings       int
}
