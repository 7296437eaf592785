package model

import (
	"fmt"
	"strconv"
	"strings"
)

// FENPosition renders the current position as a FEN string for the engine.
// The string is only ever produced right after White has moved, so the side
// to move is always Black and only Black's castling rights are reported.
func (b *Board) FENPosition() string {
	var sb strings.Builder

	for row := 0; row < 8; row++ {
		if row > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for col := 0; col < 8; col++ {
			p := b.grid[row][col]
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(p.FENLetter())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
	}

	sb.WriteString(" b")

	blackKingStart := NewCoords(0, 4)
	if !didPieceAlreadyMove(b.MoveHistory, King, blackKingStart) &&
		!IsGettingChecked(&b.grid, Black, b.MoveHistory) {
		if !didPieceAlreadyMove(b.MoveHistory, Rook, NewCoords(0, 7)) {
			sb.WriteString(" k")
		}
		if !didPieceAlreadyMove(b.MoveHistory, Rook, NewCoords(0, 0)) {
			sb.WriteString("q")
		}
	} else {
		sb.WriteString(" -")
	}

	if b.didPawnMoveTwoCells() {
		last := b.MoveHistory[len(b.MoveHistory)-1]
		from := last.From()
		fromRow := from.Row - 1
		sb.WriteByte(' ')
		sb.WriteByte(byte('a' + from.Col))
		sb.WriteString(strconv.Itoa(8 - fromRow))
	} else {
		sb.WriteString(" -")
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.ConsecutiveNonPawnOrCapture))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(len(b.MoveHistory) / 2))

	return sb.String()
}

// exportFENPosition appends the current FEN line to the position log, when
// one is attached. Write failures are ignored; the log is diagnostic only.
func (b *Board) exportFENPosition() {
	if b.fenLog == nil {
		return
	}
	fmt.Fprintln(b.fenLog, b.FENPosition())
}

// FromFEN builds a board from a FEN string. Only the piece placement and the
// side to move are consumed; castling rights, en passant and the counters
// are ignored since move legality is derived from the history scan.
func FromFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, fmt.Errorf("fen must have 6 fields, got %d", len(fields))
	}

	rows := strings.Split(fields[0], "/")
	if len(rows) != 8 {
		return nil, fmt.Errorf("fen board must have 8 ranks, got %d", len(rows))
	}
	var grid Grid
	for row, rank := range rows {
		col := 0
		for _, r := range rank {
			if col > 7 {
				return nil, fmt.Errorf("fen rank %d overflows the board", row+1)
			}
			if r >= '1' && r <= '8' {
				col += int(r - '0')
				continue
			}
			p := PieceFromFENLetter(byte(r))
			if p == nil {
				return nil, fmt.Errorf("invalid fen piece letter %q", r)
			}
			grid[row][col] = p
			col++
		}
		if col != 8 {
			return nil, fmt.Errorf("fen rank %d covers %d squares", row+1, col)
		}
	}

	var turn PieceColor
	switch fields[1] {
	case "w":
		turn = White
	case "b":
		turn = Black
	default:
		return nil, fmt.Errorf("invalid side to move %q", fields[1])
	}

	return New(grid, turn, nil), nil
}
