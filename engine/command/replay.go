package command

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// logMagic opens every command log, followed by the battle seed
var logMagic = [4]byte{'T', 'R', 'C', 'L'}

// ErrNotCommandLog is returned for input without the command log header
var ErrNotCommandLog = errors.New("not a command log")

// Recorder appends applied commands to a command log
type Recorder struct {
	Commands []GameCommand
	writer   *bufio.Writer
}

// NewRecorder creates a recorder writing to w. The log header carries the
// battle seed so playback can rebuild the same battle. A write error on the
// header surfaces from the first Record or Flush.
func NewRecorder(w io.Writer, seed int64) *Recorder {
	r := &Recorder{writer: bufio.NewWriter(w)}
	r.writer.Write(logMagic[:])
	binary.Write(r.writer, binary.LittleEndian, seed)
	return r
}

// Record writes a command to the log
func (r *Recorder) Record(cmd GameCommand) error {
	r.Commands = append(r.Commands, cmd)
	if err := cmd.Encode(r.writer); err != nil {
		return fmt.Errorf("record %s at tick %d: %w", cmd.Type, cmd.Tick, err)
	}
	return nil
}

// Flush writes any buffered commands through
func (r *Recorder) Flush() error {
	return r.writer.Flush()
}

// Replay is a loaded command log for playback
type Replay struct {
	Seed     int64
	Commands []GameCommand
}

// LoadReplay reads the header, then commands until the end of r
func LoadReplay(r io.Reader) (*Replay, error) {
	replay := &Replay{}
	reader := bufio.NewReader(r)

	var magic [4]byte
	if _, err := io.ReadFull(reader, magic[:]); err != nil {
		return nil, fmt.Errorf("load replay header: %w", ErrNotCommandLog)
	}
	if magic != logMagic {
		return nil, fmt.Errorf("load replay header %q: %w", magic[:], ErrNotCommandLog)
	}
	if err := binary.Read(reader, binary.LittleEndian, &replay.Seed); err != nil {
		return nil, fmt.Errorf("load replay seed: %w", err)
	}

	for {
		var cmd GameCommand
		err := cmd.Decode(reader)
		if errors.Is(err, io.EOF) {
			return replay, nil
		}
		if err != nil {
			return nil, fmt.Errorf("load replay at command %d: %w", len(replay.Commands), err)
		}
		replay.Commands = append(replay.Commands, cmd)
	}
}

// CommandsForTick returns all commands at a given tick during playback
func (r *Replay) CommandsForTick(tick uint64) []GameCommand {
	var result []GameCommand
	for _, c := range r.Commands {
		if c.Tick == tick {
			result = append(result, c)
		}
	}
	return result
}

// LastTick returns the tick of the final command, or 0 for an empty log
func (r *Replay) LastTick() uint64 {
	var last uint64
	for _, c := range r.Commands {
		if c.Tick > last {
			last = c.Tick
		}
	}
	return last
}
