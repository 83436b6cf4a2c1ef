package disasm

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/set"
)

const (
	startLabel  = "Start"
	funcNaming  = "_func_%04x"
	labelNaming = "_label_%04x"

	codeColumn = 32
)

// Options of the listing output.
type Options struct {
	HexComments    bool // output opcode bytes as hex values in comments
	OffsetComments bool // output addresses in comments
}

// line is a single decoded word of the program image.
type line struct {
	address uint16
	data    []byte
	word    uint16
	name    string
}

// Listing writes a disassembly listing of the program image to the writer.
// The image is decoded linearly word by word, assuming it is loaded at the
// program start address. Jump and call destinations inside the image get labels.
func Listing(w io.Writer, image []byte, options Options) error {
	lines := decodeImage(image)
	labels := collectLabels(lines, len(image))

	for _, l := range lines {
		if label, ok := labels[l.address]; ok {
			if _, err := fmt.Fprintf(w, "%s:\n", label); err != nil {
				return fmt.Errorf("writing label: %w", err)
			}
		}

		code := formatLine(l, labels)
		if comment := formatComment(l, options); comment != "" {
			code = fmt.Sprintf("%-*s ; %s", codeColumn, code, comment)
		}
		if _, err := fmt.Fprintf(w, "  %s\n", code); err != nil {
			return fmt.Errorf("writing code line: %w", err)
		}
	}
	return nil
}

func decodeImage(image []byte) []line {
	lines := make([]line, 0, len(image)/2+1)
	for i := 0; i < len(image); i += 2 {
		l := line{
			address: uint16(machine.ProgramStart + i),
			data:    image[i:min(i+2, len(image))],
		}
		if len(l.data) == 2 {
			l.word = uint16(l.data[0])<<8 | uint16(l.data[1])
			l.name = Name(l.word)
		}
		lines = append(lines, l)
	}
	return lines
}

// collectLabels returns the label names of all jump and call destinations
// that point into the program image.
func collectLabels(lines []line, imageSize int) map[uint16]string {
	calls := set.New[uint16]()
	jumps := set.New[uint16]()

	for _, l := range lines {
		target := l.word & 0x0FFF
		if target < machine.ProgramStart || int(target) >= machine.ProgramStart+imageSize {
			continue
		}
		switch {
		case l.name == chip8.CallName:
			calls.Add(target)
		case l.name == chip8.JpName && l.word&0xF000 == 0x1000:
			jumps.Add(target)
		}
	}

	destinations := make([]uint16, 0, len(calls)+len(jumps))
	for address := range calls {
		destinations = append(destinations, address)
	}
	for address := range jumps {
		if !calls.Contains(address) {
			destinations = append(destinations, address)
		}
	}
	slices.Sort(destinations)

	labels := make(map[uint16]string, len(destinations)+1)
	labels[machine.ProgramStart] = startLabel
	for _, address := range destinations {
		if address == machine.ProgramStart {
			continue
		}
		if calls.Contains(address) {
			labels[address] = fmt.Sprintf(funcNaming, address)
		} else {
			labels[address] = fmt.Sprintf(labelNaming, address)
		}
	}
	return labels
}

func formatLine(l line, labels map[uint16]string) string {
	switch {
	case len(l.data) == 1:
		return fmt.Sprintf(".byte $%02X", l.data[0])
	case l.name == "":
		return fmt.Sprintf(".word $%04X", l.word)
	}

	isJump := l.name == chip8.JpName && l.word&0xF000 == 0x1000
	if isJump || l.name == chip8.CallName {
		if label, ok := labels[l.word&0x0FFF]; ok {
			return fmt.Sprintf("%s %s", l.name, label)
		}
	}
	return Format(l.word)
}

func formatComment(l line, options Options) string {
	var parts []string
	if options.OffsetComments {
		parts = append(parts, fmt.Sprintf("$%04X", l.address))
	}
	if options.HexComments {
		hex := make([]string, len(l.data))
		for i, b := range l.data {
			hex[i] = fmt.Sprintf("%02X", b)
		}
		parts = append(parts, strings.Join(hex, " "))
	}
	return strings.Join(parts, " ")
}
