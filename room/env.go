package room

import (
	"context"
	"fmt"

	"github.com/zeu5/room-explorer/grid"
	"github.com/zeu5/room-explorer/types"
)

// Env simulates a generated room. Objects are walkable and reappear once
// the player steps off them; moves into walls leave the player in place.
type Env struct {
	room  *Room
	base  *grid.Grid
	pos   grid.Location
	steps int
}

var _ types.Environment = &Env{}

func NewEnv(r *Room, table *grid.Table) (*Env, error) {
	base, err := grid.New(r.Rows, table)
	if err != nil {
		return nil, fmt.Errorf("room %s: %w", r.Pattern, err)
	}
	if !base.Walkable(r.Start) {
		return nil, fmt.Errorf("room %s: start %s is not walkable", r.Pattern, r.Start)
	}
	return &Env{
		room: r,
		base: base,
		pos:  r.Start,
	}, nil
}

func (e *Env) Reset(ctx context.Context) (*types.Observation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.pos = e.room.Start
	e.steps = 0
	return e.observe(), nil
}

func (e *Env) Step(ctx context.Context, m types.Move) (*types.Observation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !m.Valid() {
		return nil, fmt.Errorf("invalid move %d", int(m))
	}
	dx, dy := m.Delta()
	next := e.pos.Add(dx, dy)
	blocked := !e.base.Walkable(next)
	if m.Diagonal() && !(e.base.Walkable(e.pos.Add(dx, 0)) && e.base.Walkable(e.pos.Add(0, dy))) {
		blocked = true
	}
	if !blocked {
		e.pos = next
	}
	e.steps++
	return e.observe(), nil
}

func (e *Env) observe() *types.Observation {
	obs := &types.Observation{
		Chars:  make([][]byte, len(e.room.Rows)),
		Colors: make([][]int, len(e.room.Colors)),
	}
	for y := range e.room.Rows {
		obs.Chars[y] = append([]byte(nil), e.room.Rows[y]...)
		obs.Colors[y] = append([]int(nil), e.room.Colors[y]...)
	}
	obs.Chars[e.pos.Y][e.pos.X] = e.base.Table().Symbols().Player
	obs.Colors[e.pos.Y][e.pos.X] = PlayerColor
	return obs
}

// Truth is the hidden hypothesis, for scoring only.
func (e *Env) Truth() int {
	return e.room.Truth
}

func (e *Env) Room() *Room {
	return e.room
}

func (e *Env) Position() grid.Location {
	return e.pos
}

// Steps counts Step calls since the last Reset.
func (e *Env) Steps() int {
	return e.steps
}
