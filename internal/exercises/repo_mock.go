package exercises

import "context"

type repoMock struct {
	custom  Store
	deleted Store
}

func NewMockCustomRepo() *repoMock {
	return &repoMock{
		custom:  Store{},
		deleted: Store{},
	}
}

func (r *repoMock) GetCustom(context.Context) Store {
	return r.custom
}

func (r *repoMock) GetDeleted(context.Context) Store {
	return r.deleted
}

func (r *repoMock) SaveCustom(_ context.Context, name, description, muscleGroup string) error {
	r.custom[name] = NewCustomDefinition(description, muscleGroup)
	delete(r.deleted, name)
	return nil
}

func (r *repoMock) DeleteCustom(_ context.Context, name string) error {
	def, ok := r.custom[name]
	if !ok {
		return ErrExerciseNotFound
	}
	def.IsDeleted = true
	r.deleted[name] = def
	delete(r.custom, name)
	return nil
}

func (r *repoMock) Merged(_ context.Context, builtIn Store) Store {
	merged := make(Store, len(builtIn))
	for name, def := range builtIn {
		merged[name] = def
	}
	for name, def := range r.custom {
		merged[name] = def
	}
	for name, def := range r.deleted {
		merged[name] = def
	}
	return merged
}
