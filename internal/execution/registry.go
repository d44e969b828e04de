package execution

import (
	"sort"

	"advanced-melee/internal/domain"
)

// Registry хранит MeleeData всех акторов.
// Запись создается при первом обращении.
type Registry struct {
	settings Settings
	byActor  map[string]*domain.MeleeData
}

func NewRegistry(settings Settings) *Registry {
	return &Registry{
		settings: settings,
		byActor:  make(map[string]*domain.MeleeData),
	}
}

// GetOrCreate возвращает данные актора, nil для пустого ID
func (r *Registry) GetOrCreate(actorID string) *domain.MeleeData {
	if actorID == "" {
		return nil
	}
	if d, ok := r.byActor[actorID]; ok {
		return d
	}
	d := domain.NewMeleeData(actorID, r.settings.ExecuteCooldownTicks, r.settings.GrappleCooldownTicks)
	r.byActor[actorID] = d
	return d
}

// Tick продвигает кулдауны всех акторов
func (r *Registry) Tick() {
	for _, d := range r.byActor {
		d.Tick()
	}
}

// Lookup - данные актора без создания новой записи
func (r *Registry) Lookup(actorID string) (*domain.MeleeData, bool) {
	d, ok := r.byActor[actorID]
	return d, ok
}

// Forget удаляет данные уничтоженного актора
func (r *Registry) Forget(actorID string) {
	delete(r.byActor, actorID)
}

func (r *Registry) Len() int {
	return len(r.byActor)
}

// Saveable - записи, которые стоит сохранить, по порядку ActorID
func (r *Registry) Saveable() []*domain.MeleeData {
	var out []*domain.MeleeData
	for _, d := range r.byActor {
		if d.ShouldSave(r.settings.ExecuteCooldownTicks, r.settings.GrappleCooldownTicks) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ActorID < out[j].ActorID })
	return out
}

// Restore заменяет содержимое загруженными данными.
// Записи без смысла для сохранения отбрасываются.
func (r *Registry) Restore(list []*domain.MeleeData) int {
	r.byActor = make(map[string]*domain.MeleeData, len(list))
	for _, d := range list {
		if d == nil || !d.ShouldSave(r.settings.ExecuteCooldownTicks, r.settings.GrappleCooldownTicks) {
			continue
		}
		r.byActor[d.ActorID] = d
	}
	return len(r.byActor)
}
