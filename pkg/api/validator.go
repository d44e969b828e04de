package api

import "errors"

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p EntityPayload) Validate() error {
	if p.TargetID == "" {
		return errors.New("targetId is required")
	}
	return nil
}

func (p ExecutePayload) Validate() error {
	if p.TargetID == "" {
		return errors.New("targetId is required")
	}
	return nil
}

func (p TogglePayload) Validate() error {
	for _, id := range p.ActorIDs {
		if id == "" {
			return errors.New("actorIds must not contain empty ids")
		}
	}
	return nil
}

func (r MissingModRequest) Validate() error {
	if r.ModID == "" {
		return errors.New("modId is required")
	}
	if len(r.ModID) > 256 || len(r.ModName) > 256 {
		return errors.New("mod id or name too long")
	}
	return nil
}
