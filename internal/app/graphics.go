package app

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// paintDelay outlasts a few renderer frames, so a view queued before it is
// on screen once the delay expires.
const paintDelay = 50 * time.Millisecond

// paintedMsg confirms that graphics queued up to gen have been painted.
type paintedMsg struct {
	gen int
}

type graphicsChunk struct {
	gen int
	cmd string
}

// graphicsQueue holds terminal graphics commands until they are known to be
// painted. The renderer only writes the latest view of a frame, so a command
// emitted once could be dropped when another message arrives first; queued
// commands are repeated in every view until acknowledged.
type graphicsQueue struct {
	chunks []graphicsChunk
	gen    int
}

// push queues cmd and returns the tick acknowledging it.
func (q *graphicsQueue) push(cmd string) tea.Cmd {
	if cmd == "" {
		return nil
	}
	q.gen++
	gen := q.gen
	q.chunks = append(q.chunks, graphicsChunk{gen: gen, cmd: cmd})
	return tea.Tick(paintDelay, func(time.Time) tea.Msg { return paintedMsg{gen: gen} })
}

// ack drops the commands queued up to gen.
func (q *graphicsQueue) ack(gen int) {
	i := 0
	for i < len(q.chunks) && q.chunks[i].gen <= gen {
		i++
	}
	q.chunks = q.chunks[i:]
}

// String returns the queued commands in order.
func (q *graphicsQueue) String() string {
	var b strings.Builder
	for _, c := range q.chunks {
		b.WriteString(c.cmd)
	}
	return b.String()
}
