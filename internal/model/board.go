package model

import (
	"fmt"
	"io"

	"slices"
)

// Engine is the capability the board uses for bot replies: given the current
// position as FEN it produces a best move in long algebraic notation. The
// core move and check logic never touches it; only the bot-turn orchestration
// in SelectCell does.
type Engine interface {
	SetPosition(fen string) error
	BestMove() (string, error)
}

// promotionPieces is the promotion popup order, indexed by the promotion
// cursor.
var promotionPieces = [4]PieceType{Queen, Rook, Bishop, Knight}

// undoRec captures everything MovePiece changed, so Takeback is an exact
// inverse rather than a best-effort reconstruction from the history.
type undoRec struct {
	from        Coords
	to          Coords // actual destination: the king landing square for castles
	captured    *Piece
	capturedAt  Coords
	rookFrom    Coords
	rookTo      Coords
	promoted    bool
	prevCounter int
}

// Board owns the grid, the cursor/selection state driven by an input layer,
// the move history, and the game-termination flags. It is a single mutable
// structure with no internal locking; one driving goroutine per board.
type Board struct {
	grid Grid

	Cursor              Coords
	Selected            Coords
	selectedPieceCursor int
	oldCursorPosition   Coords

	PlayerTurn  PieceColor
	MoveHistory []HistRec
	undoStack   []undoRec

	IsDraw          bool
	IsCheckmate     bool
	IsPromotion     bool
	PromotionCursor int

	// consecutive plies without a pawn move or capture, for the 50-move rule
	ConsecutiveNonPawnOrCapture int

	againstBot bool
	engine     Engine
	fenLog     io.Writer
}

// NewBoard creates a board in the standard starting position.
func NewBoard() *Board {
	return New(StartingGrid(), White, nil)
}

// New creates a board from an explicit grid, turn and history. Exactly one
// king per color must be present for checkmate logic to behave.
func New(grid Grid, turn PieceColor, history []HistRec) *Board {
	return &Board{
		grid:              grid,
		Cursor:            NewCoords(4, 4),
		Selected:          Undefined(),
		oldCursorPosition: Undefined(),
		PlayerTurn:        turn,
		MoveHistory:       history,
	}
}

// SetEngine attaches the external engine capability and switches the board
// into bot-play mode.
func (b *Board) SetEngine(e Engine) {
	b.engine = e
	b.againstBot = e != nil
}

// SetFENLog attaches the append-only position log sink. Every selection
// action writes the current FEN string to it.
func (b *Board) SetFENLog(w io.Writer) {
	b.fenLog = w
}

// Grid returns a copy of the 8x8 matrix.
func (b *Board) Grid() Grid {
	return b.grid
}

// Piece returns the piece at c, nil when the square is empty or c invalid.
func (b *Board) Piece(c Coords) *Piece {
	if !c.IsValid() {
		return nil
	}
	return b.grid.At(c)
}

func (b *Board) IsCellSelected() bool {
	return b.Selected.Row != UndefinedPosition && b.Selected.Col != UndefinedPosition
}

func (b *Board) switchPlayerTurn() {
	b.PlayerTurn = b.PlayerTurn.Opposite()
}

func (b *Board) authorizedPositions(c Coords) []Coords {
	p := b.Piece(c)
	if p == nil {
		return nil
	}
	return AuthorizedPositions(p.Type, c, p.Color, &b.grid, b.MoveHistory)
}

// AuthorizedDestinations lists the legal destinations of the side-to-move
// piece at c, sorted row-major. Empty squares and enemy pieces yield an
// empty list.
func (b *Board) AuthorizedDestinations(c Coords) []Coords {
	p := b.Piece(c)
	if p == nil || p.Color != b.PlayerTurn {
		return nil
	}
	positions := b.authorizedPositions(c)
	slices.SortFunc(positions, func(a, o Coords) int { return a.Compare(o) })
	return positions
}

// Cursor navigation. While a piece is selected the keys cycle through its
// legal destinations instead of moving the cell cursor; during promotion the
// horizontal keys drive the promotion popup.

func (b *Board) CursorUp() {
	if b.IsCheckmate || b.IsDraw || b.IsPromotion {
		return
	}
	if b.IsCellSelected() {
		b.moveSelectedPieceCursor(false, -1)
	} else if b.Cursor.Row > 0 {
		b.Cursor.Row--
	}
}

func (b *Board) CursorDown() {
	if b.IsCheckmate || b.IsDraw || b.IsPromotion {
		return
	}
	if b.IsCellSelected() {
		b.moveSelectedPieceCursor(false, 1)
	} else if b.Cursor.Row < 7 {
		b.Cursor.Row++
	}
}

func (b *Board) CursorLeft() {
	if b.IsPromotion {
		if b.PromotionCursor > 0 {
			b.PromotionCursor--
		} else {
			b.PromotionCursor = 3
		}
		return
	}
	if b.IsCheckmate || b.IsDraw {
		return
	}
	if b.IsCellSelected() {
		b.moveSelectedPieceCursor(false, -1)
	} else if b.Cursor.Col > 0 {
		b.Cursor.Col--
	}
}

func (b *Board) CursorRight() {
	if b.IsPromotion {
		b.PromotionCursor = (b.PromotionCursor + 1) % 4
		return
	}
	if b.IsCheckmate || b.IsDraw {
		return
	}
	if b.IsCellSelected() {
		b.moveSelectedPieceCursor(false, 1)
	} else if b.Cursor.Col < 7 {
		b.Cursor.Col++
	}
}

func (b *Board) moveSelectedPieceCursor(firstTime bool, direction int) {
	positions := b.authorizedPositions(b.Selected)
	if len(positions) == 0 {
		b.Cursor = Undefined()
		return
	}
	if !(b.selectedPieceCursor == 0 && firstTime) {
		next := (b.selectedPieceCursor + direction) % len(positions)
		if next == -1 {
			next = len(positions) - 1
		}
		b.selectedPieceCursor = next
	}
	slices.SortFunc(positions, func(a, o Coords) int { return a.Compare(o) })
	if b.selectedPieceCursor < len(positions) {
		b.Cursor = positions[b.selectedPieceCursor]
	}
}

// SelectCell is the confirm action. With nothing selected it selects the
// cursor cell when it holds a piece of the side to move with at least one
// legal destination. With a selection it applies the move under the cursor,
// runs promotion/termination checks, and in bot-play mode asks the engine
// for the reply and applies it symmetrically. Engine failures are returned
// so the caller can surface them; the board stays playable.
func (b *Board) SelectCell() error {
	b.exportFENPosition()
	if b.IsPromotion {
		b.PromotePiece()
		b.IsCheckmate = b.Checkmate()
		return nil
	}
	if b.IsCheckmate || b.IsDraw {
		return nil
	}

	var botErr error
	if !b.IsCellSelected() {
		p := b.Piece(b.Cursor)
		if p != nil && p.Color == b.PlayerTurn && len(b.authorizedPositions(b.Cursor)) > 0 {
			b.Selected = b.Cursor
			b.oldCursorPosition = b.Cursor
			b.moveSelectedPieceCursor(true, 1)
		}
	} else if b.Cursor.IsValid() {
		b.MovePiece(b.Selected, b.Cursor)
		b.Unselect()
		b.switchPlayerTurn()
		if b.againstBot {
			b.IsPromotion = b.isLatestMovePromotion()
			if !b.IsPromotion {
				b.IsCheckmate = b.Checkmate()
				b.IsPromotion = b.isLatestMovePromotion()
				if !b.IsCheckmate {
					botErr = b.botMove()
					if botErr == nil {
						b.switchPlayerTurn()
					}
				}
			}
		}
		b.IsDraw = b.Draw()
	}

	b.IsCheckmate = b.Checkmate()
	b.IsPromotion = b.isLatestMovePromotion()
	return botErr
}

// Unselect drops the current selection and restores the cursor to where it
// was before selecting.
func (b *Board) Unselect() {
	if b.IsCellSelected() {
		b.Selected = Undefined()
		b.selectedPieceCursor = 0
		b.Cursor = b.oldCursorPosition
	}
}

// MovePiece applies a move. Invalid coordinates or an empty origin are
// silently ignored: the input layer legitimately holds transient "no
// selection" coordinates. Legality is the caller's concern; the board
// applies whatever it is told, which is also how engine replies arrive.
func (b *Board) MovePiece(from, to Coords) {
	if !from.IsValid() || !to.IsValid() {
		return
	}
	piece := b.grid.At(from)
	target := b.grid.At(to)

	u := undoRec{
		from:        from,
		prevCounter: b.ConsecutiveNonPawnOrCapture,
		capturedAt:  Undefined(),
		rookFrom:    Undefined(),
		rookTo:      Undefined(),
	}

	// The counter advances even for a vacuous move from an empty square;
	// only a pawn move or a capture resets it.
	if piece != nil && (piece.Type == Pawn || target != nil) {
		b.ConsecutiveNonPawnOrCapture = 0
	} else {
		b.ConsecutiveNonPawnOrCapture++
	}
	if piece == nil {
		b.grid.Set(to, nil)
		return
	}

	dirY := 1
	if b.PlayerTurn == White {
		dirY = -1
	}

	if b.isEnPassant(from, to) {
		victimAt := NewCoords(to.Row-dirY, to.Col)
		u.captured = b.grid.At(victimAt)
		u.capturedAt = victimAt
		b.grid.Set(victimAt, nil)
	}

	actualTo := to
	if b.isCastling(from, to) {
		sign := 1
		if to.Col < from.Col {
			sign = -1
		}
		// Human input names the rook square; the engine names the king's
		// two-step landing square, so look the rook up in its corner.
		rookCol := to.Col
		if b.againstBot && b.PlayerTurn == Black {
			if sign > 0 {
				rookCol = 7
			} else {
				rookCol = 0
			}
		}
		landing := NewCoords(from.Row, from.Col+2*sign)
		rookFrom := NewCoords(from.Row, rookCol)
		rookTo := NewCoords(from.Row, landing.Col-sign)
		rook := b.grid.At(rookFrom)
		b.grid.Set(rookFrom, nil)
		b.grid.Set(landing, piece)
		b.grid.Set(rookTo, rook)
		u.rookFrom = rookFrom
		u.rookTo = rookTo
		actualTo = landing
	} else {
		if target != nil {
			u.captured = target
			u.capturedAt = to
		}
		b.grid.Set(to, piece)
	}
	if from != actualTo {
		b.grid.Set(from, nil)
	}

	u.to = actualTo
	b.MoveHistory = append(b.MoveHistory, HistRec{
		Piece: piece.Type,
		Move:  from.ToHist() + actualTo.ToHist(),
	})
	b.undoStack = append(b.undoStack, u)
}

// Takeback reverts the most recent ply using its undo record: the moved
// piece returns home (promotions collapse back to a pawn), the captured
// piece goes back on its square, and a castled rook walks back to its
// corner.
func (b *Board) Takeback() {
	if len(b.MoveHistory) == 0 || len(b.undoStack) == 0 {
		return
	}
	b.MoveHistory = b.MoveHistory[:len(b.MoveHistory)-1]
	u := b.undoStack[len(b.undoStack)-1]
	b.undoStack = b.undoStack[:len(b.undoStack)-1]

	mover := b.PlayerTurn.Opposite()
	piece := b.grid.At(u.to)
	if u.promoted {
		piece = NewPiece(Pawn, mover)
	}
	b.grid.Set(u.to, nil)
	b.grid.Set(u.from, piece)
	if u.rookFrom.IsValid() {
		rook := b.grid.At(u.rookTo)
		b.grid.Set(u.rookTo, nil)
		b.grid.Set(u.rookFrom, rook)
	}
	if u.captured != nil {
		b.grid.Set(u.capturedAt, u.captured)
	}

	b.ConsecutiveNonPawnOrCapture = u.prevCounter
	b.IsCheckmate = false
	b.IsDraw = false
	b.IsPromotion = false
	b.PromotionCursor = 0
	b.switchPlayerTurn()
}

// PromotePiece replaces the pawn that reached the last rank with the piece
// under the promotion cursor.
func (b *Board) PromotePiece() {
	if len(b.MoveHistory) == 0 {
		return
	}
	to := b.MoveHistory[len(b.MoveHistory)-1].To()
	p := b.Piece(to)
	if p != nil {
		b.grid.Set(to, NewPiece(promotionPieces[b.PromotionCursor], p.Color))
		if len(b.undoStack) > 0 {
			b.undoStack[len(b.undoStack)-1].promoted = true
		}
	}
	b.IsPromotion = false
	b.PromotionCursor = 0
}

// botMove asks the injected engine for the reply to the current position and
// applies it. Every failure is recoverable: the board is left exactly as the
// human's move produced it.
func (b *Board) botMove() error {
	if b.engine == nil {
		return fmt.Errorf("no engine attached to the board")
	}
	if err := b.engine.SetPosition(b.FENPosition()); err != nil {
		return fmt.Errorf("set engine position: %w", err)
	}
	best, err := b.engine.BestMove()
	if err != nil {
		return fmt.Errorf("engine best move: %w", err)
	}
	from, to, err := FromEngineMove(best)
	if err != nil {
		return err
	}
	b.MovePiece(from, to)
	return nil
}

func (b *Board) isEnPassant(from, to Coords) bool {
	p := b.Piece(from)
	return p != nil && p.Type == Pawn &&
		from.Row != to.Row && from.Col != to.Col && b.Piece(to) == nil
}

func (b *Board) isCastling(from, to Coords) bool {
	p := b.Piece(from)
	return p != nil && p.Type == King && abs(from.Col-to.Col) > 1
}

func (b *Board) isLatestMovePromotion() bool {
	if len(b.MoveHistory) == 0 {
		return false
	}
	to := b.MoveHistory[len(b.MoveHistory)-1].To()
	p := b.Piece(to)
	if p == nil || p.Type != Pawn {
		return false
	}
	lastRow := 7
	if p.Color == White {
		lastRow = 0
	}
	return to.Row == lastRow
}

func (b *Board) didPawnMoveTwoCells() bool {
	if len(b.MoveHistory) == 0 {
		return false
	}
	last := b.MoveHistory[len(b.MoveHistory)-1]
	return last.Piece == Pawn && abs(last.To().Row-last.From().Row) == 2
}

// NumberOfAuthorizedPositions counts the legal destinations across every
// piece of the side to move.
func (b *Board) NumberOfAuthorizedPositions() int {
	count := 0
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := b.grid[row][col]
			if p != nil && p.Color == b.PlayerTurn {
				count += len(b.authorizedPositions(Coords{Row: row, Col: col}))
			}
		}
	}
	return count
}

// Check reports whether the side to move is currently in check.
func (b *Board) Check() bool {
	return IsGettingChecked(&b.grid, b.PlayerTurn, b.MoveHistory)
}

// Checkmate: the side to move is in check and has no legal move.
func (b *Board) Checkmate() bool {
	if !b.Check() {
		return false
	}
	return b.NumberOfAuthorizedPositions() == 0
}

// Draw: stalemate, the 50-move rule, or repetition.
func (b *Board) Draw() bool {
	if b.NumberOfAuthorizedPositions() == 0 && !b.Check() {
		return true
	}
	return b.ConsecutiveNonPawnOrCapture == 50 || b.drawByRepetition()
}

// drawByRepetition detects an exact 4-ply cycle played twice over the last 9
// records. This is an approximation by history comparison, not position
// hashing; repetitions reached through transposed move orders are not
// caught.
func (b *Board) drawByRepetition() bool {
	n := len(b.MoveHistory)
	if n < 9 {
		return false
	}
	last := make([]HistRec, 0, 9)
	for i := n - 1; i >= n-9; i-- {
		last = append(last, b.MoveHistory[i])
	}
	return last[0] == last[4] && last[1] == last[5] &&
		last[4] == last[8] &&
		last[2] == last[6] && last[3] == last[7]
}

// GameState is the UI-facing snapshot: the grid, flags, legal destinations
// of the current selection, and the rendered history.
type GameState struct {
	Board           Grid          `json:"board"`
	ToMove          PieceColor    `json:"toMove"`
	Cursor          Coords        `json:"cursor"`
	SelectedSquare  *Coords       `json:"selectedSquare"`
	LegalMoves      []Coords      `json:"legalMoves"`
	IsCheck         bool          `json:"isCheck"`
	IsCheckmate     bool          `json:"isCheckmate"`
	IsDraw          bool          `json:"isDraw"`
	IsPromotion     bool          `json:"isPromotion"`
	PromotionCursor int           `json:"promotionCursor"`
	MoveHistory     []HistoryLine `json:"moveHistory"`
	FEN             string        `json:"fen"`
}

func (b *Board) State() GameState {
	state := GameState{
		Board:           b.grid,
		ToMove:          b.PlayerTurn,
		Cursor:          b.Cursor,
		IsCheck:         b.Check(),
		IsCheckmate:     b.IsCheckmate,
		IsDraw:          b.IsDraw,
		IsPromotion:     b.IsPromotion,
		PromotionCursor: b.PromotionCursor,
		MoveHistory:     b.HistoryDisplay(),
		FEN:             b.FENPosition(),
	}
	if b.IsCellSelected() {
		selected := b.Selected
		state.SelectedSquare = &selected
		state.LegalMoves = b.AuthorizedDestinations(selected)
	}
	return state
}
