package roulette

import "time"

// Wheel geometry
const (
	fullTurn     = 360
	segmentAngle = fullTurn / 6
	extraTurns   = 5
)

// DefaultAnimation is the minimum time the wheel spins before the reveal
const DefaultAnimation = 4 * time.Second

const (
	LogMsgSpinStarted   = "Roulette spin started"
	LogMsgSpinRevealed  = "Roulette spin revealed"
	LogMsgSpinFailed    = "Roulette spin failed"
	LogMsgTicketsLoaded = "Roulette tickets loaded"
	LogMsgReloadFailed  = "Roulette ticket reload failed"
)

const opSpin = "spin"
