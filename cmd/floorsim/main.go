// floorsim generates one dungeon floor from a seed, walks a scripted
// session across it (fighting the first hostile mob, mining the first
// rock) and writes a snapshot that reproduces the floor exactly. Build:
//
//	go build -o floorsim ./cmd/floorsim
//
// Usage:
//
//	./floorsim [--seed 1] [--depth 1] [--width 24] [--height 16]
//	           [--mobs mobs.yaml] [--floors floors.yaml]
//	           [--snapshot floor.snap] [--verbose]
//
// With no YAML paths the built-in mob and floor definitions are used.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"deepforge/internal/combat"
	"deepforge/internal/defs"
	"deepforge/internal/entity"
	"deepforge/internal/floor"
	"deepforge/internal/grid"
	"deepforge/internal/spawn"
	"deepforge/internal/terrain"
)

func main() {
	seed := flag.Int64("seed", 1, "RNG seed for floor generation and combat")
	depth := flag.Int("depth", 1, "Floor depth to generate")
	width := flag.Int("width", 24, "Floor width in cells")
	height := flag.Int("height", 16, "Floor height in cells")
	mobsPath := flag.String("mobs", "", "Path to a mob definitions YAML file")
	floorsPath := flag.String("floors", "", "Path to a floor definitions YAML file")
	snapPath := flag.String("snapshot", "", "Write the floor snapshot to this path")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(log, *seed, *depth, *width, *height, *mobsPath, *floorsPath, *snapPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, seed int64, depth, width, height int, mobsPath, floorsPath, snapPath string) error {
	reg, floors, err := loadDefs(mobsPath, floorsPath)
	if err != nil {
		return err
	}
	fd, ok := floors[depth]
	if !ok {
		return fmt.Errorf("no floor definition for depth %d", depth)
	}

	// Terrain gets its own generator so the floor RNG's draw count starts
	// at zero, matching what a restored snapshot replays.
	m, err := terrain.Generate(terrain.DefaultConfig(width, height, rand.New(rand.NewSource(seed))))
	if err != nil {
		return fmt.Errorf("generate terrain: %w", err)
	}
	log.Debug("terrain carved", "width", width, "height", height, "doors", len(m.DoorCells()))
	f := floor.New(depth, m, seed, log)

	table, err := reg.SpawnTable(fd)
	if err != nil {
		return err
	}
	placed, err := f.Generate(table)
	if err != nil {
		return err
	}
	byKind := make(map[entity.Kind]int)
	for _, p := range placed {
		byKind[p.Ent.Kind]++
	}
	log.Info("floor generated", "seed", seed, "depth", depth, "entities", len(placed))
	for kind, n := range byKind {
		log.Info("spawned", "kind", kind.String(), "count", n)
	}

	player := &combat.Player{
		Name: "adventurer",
		Stats: combat.Stats{
			Health: 100, MaxHealth: 100,
			AttackMin: 4, AttackMax: 9,
			GoldFind: 25, MagicFind: 50,
		},
		Gold: 100,
		Prog: combat.NewProgression(),
	}
	start := m.Entrance()
	playerID, err := f.Place(entity.Entity{Kind: entity.KindPlayer}, start, grid.Single())
	if err != nil {
		return fmt.Errorf("place player: %w", err)
	}
	log.Info("player placed", "x", start.X, "y", start.Y)

	// Take one step in, if the cell is open.
	step := grid.Position{X: start.X + 1, Y: start.Y}
	if err := f.Move(playerID, step); err == nil {
		log.Debug("player moved", "x", step.X, "y", step.Y)
	}

	if err := fightFirstMob(log, f, reg, player, placed); err != nil {
		return err
	}
	mineFirstRock(log, f, player, placed)

	log.Info("session complete",
		"gold", player.Gold,
		"level", player.Prog.Level,
		"xp", player.Prog.XP,
		"entities_left", f.EntityCount())

	if snapPath != "" {
		data, err := f.Snapshot().Encode()
		if err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		if err := os.WriteFile(snapPath, data, 0o644); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		log.Info("snapshot written", "path", snapPath, "bytes", len(data))
	}
	return nil
}

func loadDefs(mobsPath, floorsPath string) (*defs.MobRegistry, map[int]defs.FloorDef, error) {
	var reg *defs.MobRegistry
	var err error
	if mobsPath != "" {
		reg, err = defs.LoadMobRegistry(mobsPath)
	} else {
		reg, err = defs.NewMobRegistry(defs.DefaultMobs())
	}
	if err != nil {
		return nil, nil, err
	}

	floors := defs.DefaultFloors()
	if floorsPath != "" {
		floors, err = defs.LoadFloorDefs(floorsPath)
		if err != nil {
			return nil, nil, err
		}
	}
	return reg, floors, nil
}

// fightFirstMob runs a full encounter against the first hostile mob on the
// floor, if any, removing it on victory.
func fightFirstMob(log *slog.Logger, f *floor.Floor, reg *defs.MobRegistry, player *combat.Player, placed []spawn.Placement) error {
	for _, p := range placed {
		if p.Ent.Kind != entity.KindMob {
			continue
		}
		mob, err := reg.Spawn(p.Ent.MobID, f.Rng())
		if err != nil {
			return err
		}
		log.Info("encounter", "mob", mob.Name, "health", mob.Stats.Health)

		enc := combat.NewEncounter(f.Rng(), player, mob)
		if err := enc.Begin(); err != nil {
			return err
		}
		for round := 1; ; round++ {
			r, err := enc.Resolve()
			if err != nil {
				return err
			}
			log.Debug("round resolved", "round", round,
				"damage_dealt", r.PlayerHit.Damage,
				"mob_health", r.PlayerHit.HealthAfter)
			if r.Rewards != nil {
				log.Info("victory", "gold", r.Rewards.Gold, "xp", r.Rewards.XP, "drops", len(r.Rewards.Drops))
				f.Remove(p.Ent.ID)
				return nil
			}
			if enc.Phase() == combat.PhaseDefeat {
				log.Info("defeat", "gold_lost", r.GoldLost)
				return nil
			}
		}
	}
	log.Info("no hostile mobs on this floor")
	return nil
}

// mineFirstRock mines the first rock on the floor, if any.
func mineFirstRock(log *slog.Logger, f *floor.Floor, player *combat.Player, placed []spawn.Placement) {
	for _, p := range placed {
		if p.Ent.Kind != entity.KindRock {
			continue
		}
		drops, err := f.Mine(p.Ent.ID, player.Stats.MagicFind)
		if err != nil {
			log.Warn("mining failed", "err", err)
			return
		}
		for _, d := range drops {
			log.Info("mined", "item", d.Item, "quantity", d.Quantity)
		}
		return
	}
}
