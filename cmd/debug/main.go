package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/thatsimonsguy/cc1-hub/db"
	"github.com/thatsimonsguy/cc1-hub/internal/model"
	"github.com/thatsimonsguy/cc1-hub/internal/protocol/cc1"
)

func main() {
	DebugCLI()
}

func DebugCLI() {
	var dbPath, command, frameHex string
	var hc1, hc2, rp, lc, lt, lf, rh, tp, tr, al int
	var s, w, sy bool
	flag.StringVar(&dbPath, "db", "data/cc1-hub.db", "Path to the SQLite database file")
	flag.StringVar(&command, "cmd", "", "Command to run: encode-alert, encode-poll, encode-response, decode, crc, set-relay-command")
	flag.StringVar(&frameHex, "frame", "", "Hex-encoded frame for decode/crc")
	flag.IntVar(&hc1, "hc1", 0, "House code byte 1")
	flag.IntVar(&hc2, "hc2", 0, "House code byte 2")
	flag.IntVar(&rp, "rp", 0, "Rad open percent [0,100]")
	flag.IntVar(&lc, "lc", 0, "Light colour flags [0,3]")
	flag.IntVar(&lt, "lt", 1, "Light on-time [1,15]")
	flag.IntVar(&lf, "lf", 1, "Light flash mode [1,3]")
	flag.IntVar(&rh, "rh", 0, "Relative humidity [0,50]")
	flag.IntVar(&tp, "tp", 0, "Pipe temperature [0,199]")
	flag.IntVar(&tr, "tr", 0, "Room temperature [0,199]")
	flag.IntVar(&al, "al", 1, "Ambient light [1,62]")
	flag.BoolVar(&s, "s", false, "Switch toggle")
	flag.BoolVar(&w, "w", false, "Window open")
	flag.BoolVar(&sy, "sy", false, "Syncing")
	help := flag.Bool("help", false, "Show help")
	flag.Parse()

	if *help || command == "" {
		fmt.Println("\nUsage of cc1-debug:")
		fmt.Println("  -cmd string\tCommand to run: encode-alert, encode-poll, encode-response, decode, crc, set-relay-command")
		fmt.Println("  -hc1/-hc2 int\tHouse code bytes")
		fmt.Println("  -rp/-lc/-lt/-lf int\tPoll/command fields")
		fmt.Println("  -rh/-tp/-tr/-al int, -s/-w/-sy\tPoll response fields")
		fmt.Println("  -frame string\tHex frame for decode")
		fmt.Println("  -db string\tPath to the SQLite database file")
		os.Exit(0)
	}

	var err error
	switch command {
	case "encode-alert":
		printFrame(cc1.MakeAlert(byte(hc1), byte(hc2)))
	case "encode-poll":
		printFrame(cc1.MakePollAndCommand(byte(hc1), byte(hc2), byte(rp), byte(lc), byte(lt), byte(lf)))
	case "encode-response":
		printFrame(cc1.MakePollResponse(byte(hc1), byte(hc2), byte(rh), byte(tp), byte(tr), byte(al), s, w, sy))
	case "decode":
		err = decodeFrame(frameHex)
	case "crc":
		err = printCRC(frameHex)
	case "set-relay-command":
		err = db.SetRelayCommandCLI(dbPath,
			model.HouseCode{HC1: byte(hc1), HC2: byte(hc2)},
			model.CommandState{
				RadOpenPercent: byte(rp),
				LightColour:    byte(lc),
				LightOnTime:    byte(lt),
				LightFlash:     byte(lf),
			})
	default:
		fmt.Println("Invalid command")
		os.Exit(1)
	}

	if err != nil {
		fmt.Printf("Command %s failed: %v\n", command, err)
		os.Exit(1)
	}
}

type encoder interface {
	Encode(buf []byte, includeCRC bool) int
}

func printFrame(msg encoder) {
	buf := make([]byte, cc1.FrameLen)
	if n := msg.Encode(buf, true); n != cc1.FrameLen {
		fmt.Println("Encode failed")
		os.Exit(1)
	}
	fmt.Println(hex.EncodeToString(buf))
}

func printCRC(frameHex string) error {
	buf, err := hex.DecodeString(frameHex)
	if err != nil {
		return fmt.Errorf("bad hex frame: %w", err)
	}
	crc := cc1.ComputeCRC(buf)
	if crc == 0 {
		return fmt.Errorf("frame body invalid (need %d bytes with a non-zero type byte)", cc1.BodyLen)
	}
	fmt.Printf("0x%02X\n", crc)
	return nil
}

func decodeFrame(frameHex string) error {
	buf, err := hex.DecodeString(frameHex)
	if err != nil {
		return fmt.Errorf("bad hex frame: %w", err)
	}

	switch {
	case len(buf) < 1:
		return fmt.Errorf("empty frame")
	case cc1.FrameKind(buf[0]) == cc1.KindAlert:
		msg, n := cc1.DecodeAlert(buf)
		if n == 0 {
			return fmt.Errorf("alert frame rejected")
		}
		fmt.Printf("alert hc=%d-%d\n", msg.HC1(), msg.HC2())
	case cc1.FrameKind(buf[0]) == cc1.KindPollAndCommand:
		msg, n := cc1.DecodePollAndCommand(buf)
		if n == 0 {
			return fmt.Errorf("poll/command frame rejected")
		}
		fmt.Printf("poll_and_command hc=%d-%d rp=%d lc=%d lt=%d lf=%d\n",
			msg.HC1(), msg.HC2(), msg.RadOpenPercent(), msg.LightColour(), msg.LightOnTime(), msg.LightFlash())
	case cc1.FrameKind(buf[0]) == cc1.KindPollResponse:
		msg, n := cc1.DecodePollResponse(buf)
		if n == 0 {
			return fmt.Errorf("poll response frame rejected")
		}
		fmt.Printf("poll_response hc=%d-%d rh=%d tp=%d tr=%d al=%d s=%v w=%v sy=%v\n",
			msg.HC1(), msg.HC2(), msg.RelHumidity(), msg.PipeTemp(), msg.RoomTemp(), msg.AmbientLight(),
			msg.SwitchToggled(), msg.WindowOpen(), msg.Syncing())
	default:
		return fmt.Errorf("unknown frame type 0x%02X", buf[0])
	}
	return nil
}
