package model

import (
	"fmt"
	"time"
)

// HouseCode is the two-byte identifier of a relay/valve-controller device.
// 0xFF in either byte marks the code invalid/unset.
type HouseCode struct {
	HC1 byte `json:"hc1"`
	HC2 byte `json:"hc2"`
}

func (hc HouseCode) String() string {
	return fmt.Sprintf("%d-%d", hc.HC1, hc.HC2)
}

// CommandState is the command payload the hub sends to a relay on each
// poll cycle.
type CommandState struct {
	RadOpenPercent byte // [0,100]
	LightColour    byte // [0,3] bit flags, 1=red 2=green
	LightOnTime    byte // [1,15] in units of 30s
	LightFlash     byte // [1,3] 1=single 2=double 3=on
}

// Relay is a valve-control device known to the hub.
type Relay struct {
	HouseCode
	Name     string
	Online   bool
	Command  CommandState
	LastSeen time.Time
}

// Telemetry is one decoded poll response from a relay.
type Telemetry struct {
	HouseCode
	RelHumidity   byte // [0,50], 2% steps
	PipeTemp      byte // [0,199]
	RoomTemp      byte // [0,199]
	AmbientLight  byte // [1,62]
	WindowOpen    bool
	SwitchToggled bool
	Syncing       bool
	ReceivedAt    time.Time
}

// Alert is one decoded alert frame from a relay.
type Alert struct {
	HouseCode
	ReceivedAt time.Time
}
