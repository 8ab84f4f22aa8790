package engine

import (
	"math/rand"
	"sort"

	"github.com/piwi3910/GangSheet/internal/model"
)

// GeneticConfig holds parameters for the genetic order search.
type GeneticConfig struct {
	PopulationSize int
	Generations    int
	MutationRate   float64
	TournamentSize int
	EliteCount     int
	Seed           int64
}

// DefaultGeneticConfig returns sensible default parameters.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 40,
		Generations:    60,
		MutationRate:   0.15,
		TournamentSize: 3,
		EliteCount:     2,
		Seed:           42,
	}
}

// SequencedItem is one step of a packing sequence chosen by the search.
type SequencedItem struct {
	Item        model.PreparedItem
	Orientation Orientation
}

// gene represents a single placement decision in the chromosome.
type gene struct {
	itemIndex int         // Index into the prepared items slice
	orient    Orientation // Orientation preference for this item
}

// chromosome represents a candidate solution: an ordering of items with
// orientation preferences.
type chromosome struct {
	genes   []gene
	fitness float64
}

// geneticOptimizer searches packing orders for one canvas.
type geneticOptimizer struct {
	canvas model.CanvasSpec
	config GeneticConfig
	items  []model.PreparedItem
	rng    *rand.Rand
}

func newGeneticOptimizer(canvas model.CanvasSpec, config GeneticConfig, items []model.PreparedItem) *geneticOptimizer {
	return &geneticOptimizer{
		canvas: canvas,
		config: config,
		items:  items,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// optimize runs the genetic algorithm and returns the best chromosome.
// onGeneration, if set, is called after every generation.
func (g *geneticOptimizer) optimize(onGeneration func(done, total int)) chromosome {
	population := g.initPopulation()
	for i := range population {
		population[i].fitness = g.evaluate(population[i])
	}

	for gen := 0; gen < g.config.Generations; gen++ {
		sortByFitness(population)

		newPop := make([]chromosome, 0, g.config.PopulationSize)

		// Elitism: carry over the best individuals unchanged
		eliteCount := min(g.config.EliteCount, len(population))
		for i := 0; i < eliteCount; i++ {
			newPop = append(newPop, g.copyChromosome(population[i]))
		}

		for len(newPop) < g.config.PopulationSize {
			parent1 := g.tournamentSelect(population)
			parent2 := g.tournamentSelect(population)

			child := g.orderCrossover(parent1, parent2)
			g.mutate(&child)

			child.fitness = g.evaluate(child)
			newPop = append(newPop, child)
		}

		population = newPop
		if onGeneration != nil {
			onGeneration(gen+1, g.config.Generations)
		}
	}

	sortByFitness(population)
	return population[0]
}

// sortByFitness orders by fitness descending (higher is better). Stable, so
// equal fitness keeps population order and the search stays reproducible.
func sortByFitness(population []chromosome) {
	sort.SliceStable(population, func(i, j int) bool {
		return population[i].fitness > population[j].fitness
	})
}

// initPopulation creates the initial random population.
func (g *geneticOptimizer) initPopulation() []chromosome {
	n := len(g.items)
	population := make([]chromosome, g.config.PopulationSize)

	for i := range population {
		genes := make([]gene, n)
		perm := g.rng.Perm(n)
		for j := 0; j < n; j++ {
			genes[j] = gene{
				itemIndex: perm[j],
				orient:    g.randomOrientation(),
			}
		}
		population[i] = chromosome{genes: genes}
	}

	// Seed one chromosome with the greedy order so the search can only
	// improve on the plain MaxRects result.
	if g.config.PopulationSize > 0 {
		population[0] = g.createGreedyChromosome()
	}

	return population
}

func (g *geneticOptimizer) randomOrientation() Orientation {
	if !g.canvas.AllowRotation {
		return OrientAny
	}
	return Orientation(g.rng.Intn(3))
}

// createGreedyChromosome keeps the items in their given (sorted) order and
// leaves orientation to the packer.
func (g *geneticOptimizer) createGreedyChromosome() chromosome {
	genes := make([]gene, len(g.items))
	for i := range genes {
		genes[i] = gene{itemIndex: i, orient: OrientAny}
	}
	return chromosome{genes: genes}
}

// evaluate packs the chromosome onto a fresh canvas. Every placed item is
// worth one point; the used length fraction breaks ties, so shorter layouts
// win among those placing the same number of items.
func (g *geneticOptimizer) evaluate(c chromosome) float64 {
	packer := NewMaxRectsPacker(g.canvas.WidthPx, g.canvas.HeightPx)
	placed := 0
	usedLength := 0
	for _, gn := range c.genes {
		item := g.items[gn.itemIndex]
		pl, ok := place(packer, g.canvas, item, gn.orient)
		if !ok {
			continue
		}
		placed++
		h := item.Height
		if pl.Rotated {
			h = item.Width
		}
		usedLength = max(usedLength, pl.Y+h)
	}
	return float64(placed) - float64(usedLength)/float64(g.canvas.HeightPx+1)
}

// tournamentSelect picks the best individual from a random tournament.
func (g *geneticOptimizer) tournamentSelect(population []chromosome) chromosome {
	best := population[g.rng.Intn(len(population))]
	for i := 1; i < g.config.TournamentSize; i++ {
		candidate := population[g.rng.Intn(len(population))]
		if candidate.fitness > best.fitness {
			best = candidate
		}
	}
	return g.copyChromosome(best)
}

// orderCrossover implements Order Crossover (OX1) for permutation chromosomes.
// It preserves the relative order of genes from both parents.
func (g *geneticOptimizer) orderCrossover(parent1, parent2 chromosome) chromosome {
	n := len(parent1.genes)
	if n <= 2 {
		return g.copyChromosome(parent1)
	}

	point1 := g.rng.Intn(n)
	point2 := g.rng.Intn(n)
	if point1 > point2 {
		point1, point2 = point2, point1
	}

	child := chromosome{genes: make([]gene, n)}

	// Copy segment from parent1
	inSegment := make([]bool, n)
	for i := point1; i <= point2; i++ {
		child.genes[i] = parent1.genes[i]
		inSegment[parent1.genes[i].itemIndex] = true
	}

	// Fill remaining positions with genes from parent2 in order
	childIdx := (point2 + 1) % n
	for _, pg := range parent2.genes {
		if !inSegment[pg.itemIndex] {
			child.genes[childIdx] = pg
			childIdx = (childIdx + 1) % n
		}
	}

	return child
}

// mutate applies random mutations to a chromosome.
func (g *geneticOptimizer) mutate(c *chromosome) {
	n := len(c.genes)
	if n < 2 {
		return
	}

	// Swap mutation
	if g.rng.Float64() < g.config.MutationRate {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		c.genes[i], c.genes[j] = c.genes[j], c.genes[i]
	}

	// Orientation mutation
	if g.rng.Float64() < g.config.MutationRate {
		i := g.rng.Intn(n)
		c.genes[i].orient = g.randomOrientation()
	}

	// Inversion mutation: reverse a segment (less frequent)
	if g.rng.Float64() < g.config.MutationRate*0.5 {
		i := g.rng.Intn(n)
		j := g.rng.Intn(n)
		if i > j {
			i, j = j, i
		}
		for i < j {
			c.genes[i], c.genes[j] = c.genes[j], c.genes[i]
			i++
			j--
		}
	}
}

// copyChromosome creates a deep copy of a chromosome.
func (g *geneticOptimizer) copyChromosome(c chromosome) chromosome {
	genes := make([]gene, len(c.genes))
	copy(genes, c.genes)
	return chromosome{genes: genes, fitness: c.fitness}
}

// OptimizeOrderGenetic searches for a packing order and per-item orientation
// preference that places the most items in the shortest length. items should
// already be scaled; they are not modified. The search is deterministic for a
// given config seed. onGeneration may be nil.
func OptimizeOrderGenetic(items []model.PreparedItem, canvas model.CanvasSpec, config GeneticConfig, onGeneration func(done, total int)) []SequencedItem {
	if len(items) == 0 {
		return nil
	}

	// Small problems get the full budget; large ones shrink it since every
	// evaluation packs the whole set.
	if len(items) > 60 {
		config.Generations = max(1, config.Generations/2)
	}
	if len(items) > 200 {
		config.PopulationSize = max(2, config.PopulationSize/2)
	}
	if config.PopulationSize < 1 {
		config.PopulationSize = 1
	}
	if config.TournamentSize < 1 {
		config.TournamentSize = 1
	}

	ga := newGeneticOptimizer(canvas, config, items)
	best := ga.optimize(onGeneration)

	sequence := make([]SequencedItem, len(best.genes))
	for i, gn := range best.genes {
		sequence[i] = SequencedItem{Item: items[gn.itemIndex], Orientation: gn.orient}
	}
	return sequence
}
