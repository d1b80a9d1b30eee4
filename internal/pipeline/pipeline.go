// Package pipeline runs the card build as a fixed, ordered list of steps.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/arcanaland/cardgen/internal/card"
	"github.com/arcanaland/cardgen/internal/catalog"
	"github.com/arcanaland/cardgen/internal/compose"
	"github.com/arcanaland/cardgen/internal/config"
	"github.com/arcanaland/cardgen/internal/distribute"
	"github.com/arcanaland/cardgen/internal/quantize"
	"github.com/arcanaland/cardgen/internal/thumbnail"
)

// Thumbnail bounds used by the published folders.
const (
	SmallWidth   = 75
	SmallHeight  = 90
	MediumWidth  = 150
	MediumHeight = 180
)

// Env is the state shared by every step of a run.
type Env struct {
	Config    *config.Config
	Cards     []card.Card
	Mapping   *catalog.Mapping
	Quantizer quantize.Quantizer
	Log       logrus.FieldLogger
}

// NewEnv loads the card data and prepares the mapping and quantizer for cfg.
// With refresh set the feed is downloaded from cfg.CardsDataURL and replaces
// the local cache, so a missing cards_data file is not an error.
func NewEnv(ctx context.Context, cfg *config.Config, refresh bool, log logrus.FieldLogger) (*Env, error) {
	cards, err := catalog.Load(ctx, cfg, refresh)
	if err != nil {
		return nil, err
	}
	if refresh {
		log.WithFields(logrus.Fields{"url": cfg.CardsDataURL, "path": cfg.CardsData, "cards": len(cards)}).Info("card data refreshed")
	}

	m, err := catalog.NewMapping(cfg.Cards)
	if err != nil {
		return nil, err
	}

	q, err := quantize.New(cfg)
	if err != nil {
		return nil, err
	}

	return &Env{Config: cfg, Cards: cards, Mapping: m, Quantizer: q, Log: log}, nil
}

// Step is one named unit of work.
type Step struct {
	Name string
	Run  func(ctx context.Context, env *Env) error
}

// Generate renders the full-color set of v.
func Generate(v card.Variant) Step {
	return Step{
		Name: "generate " + v.Name(),
		Run: func(ctx context.Context, env *Env) error {
			profile, err := compose.ParseProfile(env.Config.ColorProfile)
			if err != nil {
				return err
			}
			return compose.Generate(env.Cards, env.Mapping, compose.Options{
				SrcDir:    env.Config.SrcDir,
				SpellsDir: env.Config.SpellsDir,
				OutDir:    env.Config.PNG24Dir(v),
				Variant:   v,
				Profile:   profile,
			}, env.Log)
		},
	}
}

// Resize writes thumbnails of the v set into the working directory folder.
func Resize(v card.Variant, width, height uint, folder string) Step {
	return Step{
		Name: "resize " + folder,
		Run: func(ctx context.Context, env *Env) error {
			return thumbnail.Directory(env.Cards, env.Config.PNG24Dir(v), env.Config.WorkingPath(folder), width, height, env.Log)
		},
	}
}

// Quantize writes the palette set of v.
func Quantize(v card.Variant) Step {
	return Step{
		Name: "quantize " + v.Name(),
		Run: func(ctx context.Context, env *Env) error {
			return quantize.Directory(ctx, env.Quantizer, env.Cards, env.Config.PNG24Dir(v), env.Config.PNG8Dir(v), env.Log)
		},
	}
}

// Publish copies the finished folders to the configured destinations.
func Publish() Step {
	return Step{
		Name: "publish",
		Run: func(ctx context.Context, env *Env) error {
			return distribute.Publish(env.Config.Distribute, env.Log)
		},
	}
}

// DefaultPlan is the full build over the card data loaded by NewEnv: the
// elixir set and its thumbnails, the normal set with thumbnails and palette
// copies, the same for gold, and finally publishing.
func DefaultPlan() []Step {
	elixir := card.Variant{Elixir: true}
	normal := card.Variant{}
	gold := card.Variant{Gold: true}

	return []Step{
		Generate(elixir),
		Resize(elixir, SmallWidth, SmallHeight, "cards-elixir-75"),
		Resize(elixir, MediumWidth, MediumHeight, "cards-elixir-150"),
		Generate(normal),
		Resize(normal, SmallWidth, SmallHeight, "cards-75"),
		Resize(normal, MediumWidth, MediumHeight, "cards-150"),
		Quantize(normal),
		Generate(gold),
		Resize(gold, SmallWidth, SmallHeight, "cards-75-gold"),
		Resize(gold, MediumWidth, MediumHeight, "cards-150-gold"),
		Quantize(gold),
		Publish(),
	}
}

// Runner executes steps one after another.
type Runner struct {
	env   *Env
	steps []Step
}

func NewRunner(env *Env, steps []Step) *Runner {
	return &Runner{env: env, steps: steps}
}

// Run executes every step in order and stops at the first failure.
func (r *Runner) Run(ctx context.Context) error {
	for i, step := range r.steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		log := r.env.Log.WithFields(logrus.Fields{"step": step.Name, "index": i + 1, "total": len(r.steps)})
		log.Info("step started")
		start := time.Now()

		if err := step.Run(ctx, r.env); err != nil {
			return fmt.Errorf("step %s: %w", step.Name, err)
		}

		log.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Info("step finished")
	}

	return nil
}
