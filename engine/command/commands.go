package command

import (
	"encoding/binary"
	"fmt"
	"io"
)

// CmdType identifies a player command
type CmdType uint8

const (
	CmdSelectBegin CmdType = iota // press: anchor a selection box
	CmdSelectEnd                  // release: select units inside the box
	CmdMoveOrder                  // click: send the selection to a point
	CmdArtillery                  // call a player strike on a point
	CmdSpawnVehicle               // deploy a player vehicle at a point
	cmdCount
)

func (t CmdType) String() string {
	switch t {
	case CmdSelectBegin:
		return "select_begin"
	case CmdSelectEnd:
		return "select_end"
	case CmdMoveOrder:
		return "move_order"
	case CmdArtillery:
		return "artillery"
	case CmdSpawnVehicle:
		return "spawn_vehicle"
	default:
		return "unknown"
	}
}

// GameCommand is a deterministic command that modifies game state. It
// carries raw pointer coordinates and is applied at the start of Tick.
type GameCommand struct {
	Tick uint64
	Type CmdType
	X, Y float64
}

// Encode writes a command to binary
func (c *GameCommand) Encode(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, c.Tick); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, c.Type); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, c.X); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, c.Y)
}

// Decode reads a command from binary. A clean end of stream before the
// first byte is io.EOF; a truncated command is io.ErrUnexpectedEOF.
func (c *GameCommand) Decode(r io.Reader) error {
	if err := binary.Read(r, binary.LittleEndian, &c.Tick); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &c.Type); err != nil {
		return unexpected(err)
	}
	if c.Type >= cmdCount {
		return fmt.Errorf("decode command: unknown type %d", c.Type)
	}
	if err := binary.Read(r, binary.LittleEndian, &c.X); err != nil {
		return unexpected(err)
	}
	if err := binary.Read(r, binary.LittleEndian, &c.Y); err != nil {
		return unexpected(err)
	}
	return nil
}

func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
