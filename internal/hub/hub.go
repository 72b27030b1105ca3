// Package hub runs the hub side of the CC1 protocol: the outbound poll
// cycle over all known relays and the inbound dispatch of relay traffic.
package hub

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thatsimonsguy/cc1-hub/db"
	"github.com/thatsimonsguy/cc1-hub/internal/datadog"
	"github.com/thatsimonsguy/cc1-hub/internal/env"
	"github.com/thatsimonsguy/cc1-hub/internal/model"
	"github.com/thatsimonsguy/cc1-hub/internal/protocol/cc1"
	"github.com/thatsimonsguy/cc1-hub/internal/radio"
)

type Hub struct {
	conn *sql.DB
	link *radio.Link
}

func New(conn *sql.DB, link *radio.Link) *Hub {
	return &Hub{conn: conn, link: link}
}

// RunPollLoop periodically transmits a PollAndCommand to every online
// relay. Protocol convention: at least every 15m, generally no more than
// every 30s; relays fall back after ~30m of silence from their hub.
func (h *Hub) RunPollLoop() {
	go func() {
		log.Info().Int("interval_seconds", env.Cfg.PollIntervalSeconds).Msg("Starting poll loop")
		for {
			time.Sleep(time.Duration(env.Cfg.PollIntervalSeconds) * time.Second)
			h.PollOnce()
		}
	}()
}

// PollOnce transmits one PollAndCommand to each online relay.
func (h *Hub) PollOnce() {
	relays, err := db.GetRelays(h.conn)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load relay registry for poll cycle")
		return
	}
	for _, r := range relays {
		if !r.Online {
			continue
		}
		if err := h.pollRelay(r); err != nil {
			log.Error().Err(err).Str("relay", r.HouseCode.String()).Msg("Failed to poll relay")
			datadog.Count("relay.poll_failures", 1, fmt.Sprintf("relay:%s", r.HouseCode))
		}
	}
}

func (h *Hub) pollRelay(r model.Relay) error {
	// The factory clamps whatever is in the database into codec range.
	msg := cc1.MakePollAndCommand(r.HC1, r.HC2,
		r.Command.RadOpenPercent, r.Command.LightColour,
		r.Command.LightOnTime, r.Command.LightFlash)
	if !msg.IsValid() {
		return fmt.Errorf("relay %s has an invalid house code", r.HouseCode)
	}

	buf := make([]byte, cc1.FrameLen)
	if n := msg.Encode(buf, true); n != cc1.FrameLen {
		return fmt.Errorf("encode poll/command for %s failed", r.HouseCode)
	}
	if err := h.link.WriteFrame(buf); err != nil {
		return err
	}

	log.Debug().
		Str("relay", r.HouseCode.String()).
		Uint8("rad_open_percent", r.Command.RadOpenPercent).
		Msg("Polled relay")
	return nil
}

// RunInboundLoop reads frames off the radio until the link fails.
func (h *Hub) RunInboundLoop() error {
	log.Info().Msg("Starting inbound frame loop")
	for {
		f, err := h.link.ReadFrame()
		if err != nil {
			return fmt.Errorf("radio link read: %w", err)
		}
		h.HandleFrame(f)
	}
}

// HandleFrame dispatches one classified frame to the matching decoder.
// Decode failures are counted and dropped; retry policy belongs to the
// relays, which repeat alerts until polled.
func (h *Hub) HandleFrame(f radio.Frame) {
	switch f.Kind {
	case cc1.KindPollResponse:
		h.handlePollResponse(f.Buf[:])
	case cc1.KindAlert:
		h.handleAlert(f.Buf[:])
	case cc1.KindPollAndCommand:
		// Our own outbound traffic echoed back by the modem.
		log.Debug().Msg("Dropping echoed poll/command frame")
	default:
		datadog.Count("relay.unknown_frames", 1)
	}
}

func (h *Hub) handlePollResponse(buf []byte) {
	msg, n := cc1.DecodePollResponse(buf)
	if n == 0 || !msg.IsValid() {
		log.Warn().Hex("frame", buf).Msg("Rejected poll response frame")
		datadog.Count("relay.decode_failures", 1, "frame_type:poll_response")
		return
	}

	hc := model.HouseCode{HC1: msg.HC1(), HC2: msg.HC2()}
	if _, err := db.GetRelayByHouseCode(h.conn, hc); err != nil {
		log.Warn().Str("relay", hc.String()).Msg("Poll response from unknown relay, dropping")
		datadog.Count("relay.unknown_house_codes", 1)
		return
	}

	now := time.Now()
	tel := model.Telemetry{
		HouseCode:     hc,
		RelHumidity:   msg.RelHumidity(),
		PipeTemp:      msg.PipeTemp(),
		RoomTemp:      msg.RoomTemp(),
		AmbientLight:  msg.AmbientLight(),
		WindowOpen:    msg.WindowOpen(),
		SwitchToggled: msg.SwitchToggled(),
		Syncing:       msg.Syncing(),
		ReceivedAt:    now,
	}
	if err := db.RecordTelemetry(h.conn, tel); err != nil {
		log.Error().Err(err).Str("relay", hc.String()).Msg("Failed to record telemetry")
		return
	}
	if err := db.MarkRelaySeen(h.conn, hc, now); err != nil {
		log.Error().Err(err).Str("relay", hc.String()).Msg("Failed to mark relay seen")
	}

	relayTag := fmt.Sprintf("relay:%s", hc)
	datadog.Gauge("relay.humidity", float64(tel.RelHumidity)*2, relayTag)
	datadog.Gauge("relay.temperature.pipe", float64(tel.PipeTemp)/2, relayTag)
	datadog.Gauge("relay.temperature.room", float64(tel.RoomTemp)/4, relayTag)
	datadog.Gauge("relay.ambient_light", float64(tel.AmbientLight), relayTag)

	log.Debug().
		Str("relay", hc.String()).
		Uint8("rh", tel.RelHumidity).
		Uint8("tp", tel.PipeTemp).
		Uint8("tr", tel.RoomTemp).
		Uint8("al", tel.AmbientLight).
		Bool("window_open", tel.WindowOpen).
		Bool("syncing", tel.Syncing).
		Msg("Recorded poll response")
}

func (h *Hub) handleAlert(buf []byte) {
	msg, n := cc1.DecodeAlert(buf)
	if n == 0 || !msg.IsValid() {
		log.Warn().Hex("frame", buf).Msg("Rejected alert frame")
		datadog.Count("relay.decode_failures", 1, "frame_type:alert")
		return
	}

	hc := model.HouseCode{HC1: msg.HC1(), HC2: msg.HC2()}
	now := time.Now()
	if err := db.RecordAlert(h.conn, model.Alert{HouseCode: hc, ReceivedAt: now}); err != nil {
		log.Error().Err(err).Str("relay", hc.String()).Msg("Failed to record alert")
		return
	}
	if err := db.MarkRelaySeen(h.conn, hc, now); err != nil {
		log.Error().Err(err).Str("relay", hc.String()).Msg("Failed to mark relay seen")
	}
	datadog.Count("relay.alerts", 1, fmt.Sprintf("relay:%s", hc))

	log.Warn().Str("relay", hc.String()).Msg("Relay raised an alert")
}
