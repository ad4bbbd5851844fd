package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/precintos-api/internal/domain/entity"
	"github.com/jhoicas/precintos-api/internal/domain/repository"
)

// Fakes en memoria del almacén completo para los tests de los casos de uso
// administrativos (usuarios, sedes, configuración y backup).

type memSealRepo struct {
	seals map[string]entity.Seal

	failUpdateCity bool
}

func newMemSealRepo() *memSealRepo {
	return &memSealRepo{seals: make(map[string]entity.Seal)}
}

func (r *memSealRepo) Create(seal *entity.Seal) error {
	r.seals[seal.ID] = *seal
	return nil
}

func (r *memSealRepo) GetByID(id string) (*entity.Seal, error) {
	s, ok := r.seals[id]
	if !ok {
		return nil, nil
	}
	dup := s
	return &dup, nil
}

func (r *memSealRepo) GetByIDs(ids []string) ([]*entity.Seal, error) {
	var out []*entity.Seal
	for _, id := range ids {
		if s, ok := r.seals[id]; ok {
			dup := s
			out = append(out, &dup)
		}
	}
	return out, nil
}

func (r *memSealRepo) Update(seal *entity.Seal) error {
	r.seals[seal.ID] = *seal
	return nil
}

func (r *memSealRepo) List(filter repository.SealFilter) ([]*entity.Seal, error) {
	var out []*entity.Seal
	for _, s := range r.seals {
		if filter.City != "" && s.City != filter.City {
			continue
		}
		dup := s
		out = append(out, &dup)
	}
	return out, nil
}

func (r *memSealRepo) Count(filter repository.SealFilter) (int, error) {
	list, _ := r.List(filter)
	return len(list), nil
}

func (r *memSealRepo) Delete(id string) error {
	delete(r.seals, id)
	return nil
}

func (r *memSealRepo) AppendMovement(m *entity.MovementHistory) error { return nil }

func (r *memSealRepo) ListMovements(sealID string) ([]entity.MovementHistory, error) {
	s, ok := r.seals[sealID]
	if !ok {
		return nil, nil
	}
	return append([]entity.MovementHistory(nil), s.History...), nil
}

func (r *memSealRepo) UpdateCity(oldCity, newCity string) error {
	if r.failUpdateCity {
		return fmt.Errorf("fallo simulado en cascada de precintos")
	}
	for id, s := range r.seals {
		if s.City == oldCity {
			s.City = newCity
			r.seals[id] = s
		}
	}
	return nil
}

func (r *memSealRepo) ReplaceAll(seals []*entity.Seal) error {
	r.seals = make(map[string]entity.Seal)
	for _, s := range seals {
		r.seals[s.ID] = *s
	}
	return nil
}

type memUserRepo struct {
	users map[string]entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]entity.User)}
}

func (r *memUserRepo) Create(user *entity.User) error {
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	dup := u
	return &dup, nil
}

func (r *memUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			dup := u
			return &dup, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(user *entity.User) error {
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) List(limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		dup := u
		out = append(out, &dup)
	}
	return out, nil
}

func (r *memUserRepo) ListByCity(city string, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.City == city {
			dup := u
			out = append(out, &dup)
		}
	}
	return out, nil
}

func (r *memUserRepo) Delete(id string) error {
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) UpdateCity(oldCity, newCity string) error {
	for id, u := range r.users {
		if u.City == oldCity {
			u.City = newCity
			r.users[id] = u
		}
	}
	return nil
}

func (r *memUserRepo) ReplaceAll(users []*entity.User) error {
	r.users = make(map[string]entity.User)
	for _, u := range users {
		r.users[u.ID] = *u
	}
	return nil
}

type memCityRepo struct {
	cities map[string]entity.City
}

func newMemCityRepo() *memCityRepo {
	return &memCityRepo{cities: make(map[string]entity.City)}
}

func (r *memCityRepo) Create(city *entity.City) error {
	r.cities[city.ID] = *city
	return nil
}

func (r *memCityRepo) GetByID(id string) (*entity.City, error) {
	c, ok := r.cities[id]
	if !ok {
		return nil, nil
	}
	dup := c
	return &dup, nil
}

func (r *memCityRepo) GetByName(name string) (*entity.City, error) {
	for _, c := range r.cities {
		if c.Name == name {
			dup := c
			return &dup, nil
		}
	}
	return nil, nil
}

func (r *memCityRepo) Update(city *entity.City) error {
	r.cities[city.ID] = *city
	return nil
}

func (r *memCityRepo) List() ([]*entity.City, error) {
	var out []*entity.City
	for _, c := range r.cities {
		dup := c
		out = append(out, &dup)
	}
	return out, nil
}

func (r *memCityRepo) Delete(id string) error {
	delete(r.cities, id)
	return nil
}

func (r *memCityRepo) ReplaceAll(cities []*entity.City) error {
	r.cities = make(map[string]entity.City)
	for _, c := range cities {
		r.cities[c.ID] = *c
	}
	return nil
}

type memSettingsRepo struct {
	settings entity.Settings
}

func newMemSettingsRepo() *memSettingsRepo {
	return &memSettingsRepo{settings: entity.Settings{
		SealTypes: append([]string(nil), entity.DefaultSealTypes...),
	}}
}

func (r *memSettingsRepo) Get() (*entity.Settings, error) {
	dup := r.settings
	return &dup, nil
}

func (r *memSettingsRepo) Save(s *entity.Settings) error {
	r.settings = *s
	return nil
}

// memStore agrupa los fakes y emula RunStore con snapshot/restore: si el
// callback falla, ninguna colección queda mutada.
type memStore struct {
	seals    *memSealRepo
	users    *memUserRepo
	cities   *memCityRepo
	settings *memSettingsRepo
}

func newMemStore() *memStore {
	return &memStore{
		seals:    newMemSealRepo(),
		users:    newMemUserRepo(),
		cities:   newMemCityRepo(),
		settings: newMemSettingsRepo(),
	}
}

func (s *memStore) RunStore(ctx context.Context, fn func(
	sealRepo repository.SealRepository,
	userRepo repository.UserRepository,
	cityRepo repository.CityRepository,
	settingsRepo repository.SettingsRepository,
) error) error {
	sealsSnap := make(map[string]entity.Seal, len(s.seals.seals))
	for k, v := range s.seals.seals {
		sealsSnap[k] = v
	}
	usersSnap := make(map[string]entity.User, len(s.users.users))
	for k, v := range s.users.users {
		usersSnap[k] = v
	}
	citiesSnap := make(map[string]entity.City, len(s.cities.cities))
	for k, v := range s.cities.cities {
		citiesSnap[k] = v
	}
	settingsSnap := s.settings.settings

	if err := fn(s.seals, s.users, s.cities, s.settings); err != nil {
		s.seals.seals = sealsSnap
		s.users.users = usersSnap
		s.cities.cities = citiesSnap
		s.settings.settings = settingsSnap
		return err
	}
	return nil
}
