package core

import (
	"context"
	"log/slog"
	"sync/atomic"

	"netivim/entity"
	"netivim/internal/lib/sl"
	"netivim/internal/service/advisor"
	"netivim/internal/service/intake"
)

type Repository interface {
	List() []entity.School
	Get(id string) (entity.School, bool)
}

type IntakeForm interface {
	Submit(ctx context.Context, fields intake.Fields) (entity.School, error)
}

type AdvisorManager interface {
	Open() *advisor.Session
	Get(id string) (*advisor.Session, bool)
	Close(id string) bool
}

type Core struct {
	repo     Repository
	intake   IntakeForm
	advisor  AdvisorManager
	firstRun atomic.Bool
	log      *slog.Logger
}

func New(log *slog.Logger) *Core {
	return &Core{
		log: log.With(sl.Module("core")),
	}
}

func (c *Core) SetRepository(repo Repository) {
	c.repo = repo
}

func (c *Core) SetIntake(form IntakeForm) {
	c.intake = form
}

func (c *Core) SetAdvisor(manager AdvisorManager) {
	c.advisor = manager
}

// SetFirstRun records that the collection was seeded on this start. The
// first Status call reports it and clears it, so only one browser gets the
// welcome prompt.
func (c *Core) SetFirstRun(firstRun bool) {
	c.firstRun.Store(firstRun)
}

type Status struct {
	FirstRun bool `json:"first_run"`
	Total    int  `json:"total"`
	Advisor  bool `json:"advisor"`
}

func (c *Core) Status() Status {
	total := 0
	if c.repo != nil {
		total = len(c.repo.List())
	}
	return Status{
		FirstRun: c.firstRun.Swap(false),
		Total:    total,
		Advisor:  c.advisor != nil,
	}
}
