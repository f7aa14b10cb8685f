package neuroevo

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
	"slices"
)

// checkpointData is the on-disk form of a population: its shape and the flat
// encoding of every genome. Fitness and agent state are not saved; a loaded
// population starts with active agents.
type checkpointData struct {
	Shape      []int
	Generation int
	Genomes    [][]float64
	Elite      []float64 // Optional; empty when no generation has advanced yet
}

// SaveCheckpoint writes the population's genomes and the optional elite genome
// to a gzip-compressed gob file.
func SaveCheckpoint(filePath string, p *Population, elite *Genome) (err error) {
	data := checkpointData{
		Shape:      slices.Clone(p.config.Network.Shape),
		Generation: p.generation,
		Genomes:    make([][]float64, len(p.agents)),
	}
	for i, a := range p.agents {
		data.Genomes[i] = a.genome.Flatten()
	}
	if elite != nil {
		data.Elite = elite.Flatten()
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create checkpoint file '%s': %w", filePath, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close checkpoint file '%s': %w", filePath, cerr)
		}
	}()

	gzWriter := gzip.NewWriter(file)
	if err := gob.NewEncoder(gzWriter).Encode(data); err != nil {
		gzWriter.Close()
		return fmt.Errorf("failed to encode population data: %w", err)
	}
	if err := gzWriter.Close(); err != nil {
		return fmt.Errorf("failed to flush checkpoint: %w", err)
	}
	return nil
}

// LoadCheckpoint restores a population saved by SaveCheckpoint. The saved
// shape and genome count must match config. The elite genome is nil when the
// checkpoint holds none.
func LoadCheckpoint(filePath string, config Config) (*Population, *Genome, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open checkpoint file '%s': %w", filePath, err)
	}
	defer file.Close()

	gzReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create gzip reader for checkpoint: %w", err)
	}
	defer gzReader.Close()

	var data checkpointData
	if err := gob.NewDecoder(gzReader).Decode(&data); err != nil {
		return nil, nil, fmt.Errorf("failed to decode population data from checkpoint: %w", err)
	}

	if !slices.Equal(data.Shape, config.Network.Shape) {
		return nil, nil, fmt.Errorf("%w: saved shape %v, config declares %v", ErrCheckpoint, data.Shape, config.Network.Shape)
	}

	genomes := make([]*Genome, len(data.Genomes))
	for i, flat := range data.Genomes {
		g, err := Unflatten(data.Shape, flat)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: genome %d: %w", ErrCheckpoint, i, err)
		}
		genomes[i] = g
	}

	p, err := NewPopulation(config, genomes, data.Generation)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrCheckpoint, err)
	}

	var elite *Genome
	if len(data.Elite) > 0 {
		elite, err = Unflatten(data.Shape, data.Elite)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: elite: %w", ErrCheckpoint, err)
		}
	}
	return p, elite, nil
}
