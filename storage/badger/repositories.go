package badger

import "errors"

// Repositories bundles the repositories that share one backend.
type Repositories struct {
	Symptoms *SymptomRepository
	FAQs     *FAQRepository
	Stamps   *StampRepository
	Backend  *Backend
}

// OpenRepositories opens the database at path and creates every repository on it.
// Caller must call Close when done.
func OpenRepositories(path string) (*Repositories, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return newRepositories(backend)
}

func newRepositories(backend *Backend) (*Repositories, error) {
	symptoms, err := NewSymptomRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	faqs, err := NewFAQRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return &Repositories{
		Symptoms: symptoms,
		FAQs:     faqs,
		Stamps:   NewStampRepository(backend),
		Backend:  backend,
	}, nil
}

// Close closes every repository and then the backend.
func (r *Repositories) Close() error {
	return errors.Join(
		r.Symptoms.Close(),
		r.FAQs.Close(),
		r.Stamps.Close(),
		r.Backend.Close(),
	)
}
