package usecase

import (
	"sync"

	"github.com/forest33/bitguard/business/entity"
)

type statistic struct {
	malformed uint64
	schemes   map[string]*entity.SchemeStatistic
	mux       sync.RWMutex
}

func newStatistic() *statistic {
	return &statistic{
		schemes: make(map[string]*entity.SchemeStatistic, len(entity.SchemeNames)),
	}
}

func (s *statistic) addVerdict(scheme string, accepted, corrupted bool) {
	s.mux.Lock()
	defer s.mux.Unlock()

	st, ok := s.schemes[scheme]
	if !ok {
		st = &entity.SchemeStatistic{}
		s.schemes[scheme] = st
	}
	st.Add(accepted, corrupted)
}

func (s *statistic) addMalformed() {
	s.mux.Lock()
	s.malformed++
	s.mux.Unlock()
}

func (s *statistic) get() *entity.Statistic {
	s.mux.RLock()
	defer s.mux.RUnlock()

	stat := &entity.Statistic{
		Malformed: s.malformed,
		Schemes:   make(map[string]*entity.SchemeStatistic, len(s.schemes)),
	}
	for name, st := range s.schemes {
		cp := *st
		stat.Schemes[name] = &cp
	}

	return stat
}
