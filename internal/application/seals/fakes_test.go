package seals

import (
	"context"
	"fmt"

	"github.com/jhoicas/precintos-api/internal/domain/entity"
	"github.com/jhoicas/precintos-api/internal/domain/repository"
)

// fakeSealRepo repositorio en memoria para los tests del motor de movimientos.
// Guarda copias por valor para que las mutaciones solo se vean tras Update.
type fakeSealRepo struct {
	seals     map[string]entity.Seal
	movements map[string][]entity.MovementHistory // más reciente primero

	// failUpdateOn simula un fallo de persistencia al actualizar ese ID.
	failUpdateOn string
}

func newFakeSealRepo() *fakeSealRepo {
	return &fakeSealRepo{
		seals:     make(map[string]entity.Seal),
		movements: make(map[string][]entity.MovementHistory),
	}
}

func (r *fakeSealRepo) Create(seal *entity.Seal) error {
	if _, ok := r.seals[seal.ID]; ok {
		return fmt.Errorf("id duplicado en repo: %s", seal.ID)
	}
	r.seals[seal.ID] = *seal
	return nil
}

func (r *fakeSealRepo) GetByID(id string) (*entity.Seal, error) {
	s, ok := r.seals[id]
	if !ok {
		return nil, nil
	}
	dup := s
	return &dup, nil
}

func (r *fakeSealRepo) GetByIDs(ids []string) ([]*entity.Seal, error) {
	var out []*entity.Seal
	for _, id := range ids {
		if s, ok := r.seals[id]; ok {
			dup := s
			out = append(out, &dup)
		}
	}
	return out, nil
}

func (r *fakeSealRepo) Update(seal *entity.Seal) error {
	if seal.ID == r.failUpdateOn {
		return fmt.Errorf("fallo simulado al actualizar %s", seal.ID)
	}
	if _, ok := r.seals[seal.ID]; !ok {
		return fmt.Errorf("no existe: %s", seal.ID)
	}
	r.seals[seal.ID] = *seal
	return nil
}

func (r *fakeSealRepo) List(filter repository.SealFilter) ([]*entity.Seal, error) {
	var out []*entity.Seal
	for _, s := range r.seals {
		if filter.City != "" && s.City != filter.City {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		dup := s
		out = append(out, &dup)
	}
	return out, nil
}

func (r *fakeSealRepo) Count(filter repository.SealFilter) (int, error) {
	list, _ := r.List(filter)
	return len(list), nil
}

func (r *fakeSealRepo) Delete(id string) error {
	delete(r.seals, id)
	delete(r.movements, id)
	return nil
}

func (r *fakeSealRepo) AppendMovement(m *entity.MovementHistory) error {
	r.movements[m.SealID] = append([]entity.MovementHistory{*m}, r.movements[m.SealID]...)
	return nil
}

func (r *fakeSealRepo) ListMovements(sealID string) ([]entity.MovementHistory, error) {
	return append([]entity.MovementHistory(nil), r.movements[sealID]...), nil
}

func (r *fakeSealRepo) UpdateCity(oldCity, newCity string) error {
	for id, s := range r.seals {
		if s.City == oldCity {
			s.City = newCity
			r.seals[id] = s
		}
	}
	return nil
}

func (r *fakeSealRepo) ReplaceAll(seals []*entity.Seal) error {
	r.seals = make(map[string]entity.Seal)
	r.movements = make(map[string][]entity.MovementHistory)
	for _, s := range seals {
		r.seals[s.ID] = *s
		r.movements[s.ID] = append([]entity.MovementHistory(nil), s.History...)
	}
	return nil
}

// fakeTxRunner emula la transacción haciendo snapshot del repo y restaurándolo
// si el callback falla: o se aplican todas las mutaciones, o ninguna.
type fakeTxRunner struct {
	repo *fakeSealRepo
}

func (t *fakeTxRunner) Run(ctx context.Context, fn func(sealRepo repository.SealRepository) error) error {
	sealsSnap := make(map[string]entity.Seal, len(t.repo.seals))
	for k, v := range t.repo.seals {
		sealsSnap[k] = v
	}
	movsSnap := make(map[string][]entity.MovementHistory, len(t.repo.movements))
	for k, v := range t.repo.movements {
		movsSnap[k] = append([]entity.MovementHistory(nil), v...)
	}
	if err := fn(t.repo); err != nil {
		t.repo.seals = sealsSnap
		t.repo.movements = movsSnap
		return err
	}
	return nil
}

// fakeSettingsRepo configuración en memoria.
type fakeSettingsRepo struct {
	settings entity.Settings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: entity.Settings{
		SafeMode:  false,
		SealTypes: append([]string(nil), entity.DefaultSealTypes...),
	}}
}

func (r *fakeSettingsRepo) Get() (*entity.Settings, error) {
	dup := r.settings
	return &dup, nil
}

func (r *fakeSettingsRepo) Save(s *entity.Settings) error {
	r.settings = *s
	return nil
}

// newTestUseCase arma el caso de uso con fakes y devuelve también el repo
// para sembrar datos y hacer asserts directos.
func newTestUseCase() (*SealUseCase, *fakeSealRepo, *fakeSettingsRepo) {
	repo := newFakeSealRepo()
	settings := newFakeSettingsRepo()
	uc := NewSealUseCase(&fakeTxRunner{repo: repo}, repo, settings)
	return uc, repo, settings
}
