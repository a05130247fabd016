package client

import (
	"context"
	"strings"
	"sync"

	"todolist/models"
)

// Filter selects which items a view shows.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Controller mirrors the server's task collection locally. Every operation
// calls the gateway, then reconciles local state from the server's answer:
// the list is always the last acknowledged server state, never a guess
// (except for the clear-completed sweep, which is best-effort on purpose).
//
// State changes are applied under one mutex so readers never observe a
// half-applied operation. Nothing stops two operations from being in flight
// at once; both share the same pending/lastError flags, so a completion can
// clobber the other's in-flight flag. That matches the original behavior
// and is documented in the tests.
type Controller struct {
	mu sync.Mutex
	gw Gateway

	items     []models.Task
	filter    Filter
	pending   bool
	lastError string
	draft     string
}

func NewController(gw Gateway) *Controller {
	return &Controller{gw: gw, filter: FilterAll}
}

func (c *Controller) begin() {
	c.mu.Lock()
	c.pending = true
	c.lastError = ""
	c.mu.Unlock()
}

func (c *Controller) fail(msg string) {
	c.mu.Lock()
	c.pending = false
	c.lastError = msg
	c.mu.Unlock()
}

// Load replaces the local list with the server's, wholesale. On failure the
// previous list stays as it was.
func (c *Controller) Load(ctx context.Context) {
	c.begin()
	tasks, err := c.gw.List(ctx)
	if err != nil {
		c.fail("Failed to load todos")
		return
	}
	c.mu.Lock()
	c.items = tasks
	c.pending = false
	c.mu.Unlock()
}

// Add creates a task from the draft title. A draft that trims to nothing is
// a local no-op; the request is never sent. On success the new item goes to
// the front (newest first locally) and the draft resets.
func (c *Controller) Add(ctx context.Context) {
	c.mu.Lock()
	title := strings.TrimSpace(c.draft)
	c.mu.Unlock()
	if title == "" {
		return
	}

	c.begin()
	task, err := c.gw.Create(ctx, title)
	if err != nil {
		c.fail("Failed to add todo")
		return
	}
	c.mu.Lock()
	c.items = append([]models.Task{task}, c.items...)
	c.draft = ""
	c.pending = false
	c.mu.Unlock()
}

// Toggle flips the completion flag of the item with the given id. The
// server's returned item replaces the local one in place; an unknown id is
// a no-op.
func (c *Controller) Toggle(ctx context.Context, id string) {
	c.mu.Lock()
	var current *models.Task
	for i := range c.items {
		if c.items[i].ID == id {
			current = &c.items[i]
			break
		}
	}
	if current == nil {
		c.mu.Unlock()
		return
	}
	flipped := !current.Completed
	c.mu.Unlock()

	c.begin()
	task, err := c.gw.Update(ctx, id, models.TaskPatch{Completed: &flipped})
	if err != nil {
		c.fail("Failed to update todo")
		return
	}
	c.mu.Lock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i] = task
			break
		}
	}
	c.pending = false
	c.mu.Unlock()
}

// Remove deletes the item with the given id.
func (c *Controller) Remove(ctx context.Context, id string) {
	c.begin()
	if _, err := c.gw.Delete(ctx, id); err != nil {
		c.fail("Failed to delete todo")
		return
	}
	c.mu.Lock()
	c.items = removeByID(c.items, id)
	c.pending = false
	c.mu.Unlock()
}

// ClearCompleted deletes every item that was completed when the sweep
// started. The snapshot is taken once; deletes run sequentially and an
// individual failure neither aborts the sweep nor sets lastError. Locally,
// every snapshotted id is removed no matter how its delete went. Like any
// other operation, starting the sweep clears a leftover error message.
func (c *Controller) ClearCompleted(ctx context.Context) {
	c.mu.Lock()
	var ids []string
	for _, t := range c.items {
		if t.Completed {
			ids = append(ids, t.ID)
		}
	}
	c.pending = true
	c.lastError = ""
	c.mu.Unlock()

	for _, id := range ids {
		_, _ = c.gw.Delete(ctx, id)
	}

	c.mu.Lock()
	for _, id := range ids {
		c.items = removeByID(c.items, id)
	}
	c.pending = false
	c.mu.Unlock()
}

func removeByID(tasks []models.Task, id string) []models.Task {
	out := tasks[:0]
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// Items returns a copy of the current list.
func (c *Controller) Items() []models.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Task, len(c.items))
	copy(out, c.items)
	return out
}

// ShownItems returns the items the active filter admits, in list order.
func (c *Controller) ShownItems() []models.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := []models.Task{}
	for _, t := range c.items {
		switch c.filter {
		case FilterActive:
			if !t.Completed {
				out = append(out, t)
			}
		case FilterCompleted:
			if t.Completed {
				out = append(out, t)
			}
		default:
			out = append(out, t)
		}
	}
	return out
}

// PendingCount is how many items are not completed yet.
func (c *Controller) PendingCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.items {
		if !t.Completed {
			n++
		}
	}
	return n
}

func (c *Controller) Filter() Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

func (c *Controller) SetFilter(f Filter) {
	c.mu.Lock()
	c.filter = f
	c.mu.Unlock()
}

// CycleFilter advances all -> active -> completed -> all.
func (c *Controller) CycleFilter() Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.filter {
	case FilterAll:
		c.filter = FilterActive
	case FilterActive:
		c.filter = FilterCompleted
	default:
		c.filter = FilterAll
	}
	return c.filter
}

func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}

func (c *Controller) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *Controller) SetDraft(s string) {
	c.mu.Lock()
	c.draft = s
	c.mu.Unlock()
}
