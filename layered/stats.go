package layered

type Stats struct {
	// number of dependency levels
	NbLevels int
	// number of batches after splitting levels
	NbBatches int
	// number of scheduled nodes
	NbNodes int
	// size of the largest batch
	MaxBatchSize int
	// number of values released before the end of the evaluation
	NbPruned int
}

func (p *Plan) GetStats() Stats {
	s := Stats{
		NbLevels:  p.NbLevels,
		NbBatches: len(p.Batches),
	}
	for _, batch := range p.Batches {
		s.NbNodes += len(batch)
		if len(batch) > s.MaxBatchSize {
			s.MaxBatchSize = len(batch)
		}
	}
	for _, ids := range p.Prune {
		s.NbPruned += len(ids)
	}
	return s
}
