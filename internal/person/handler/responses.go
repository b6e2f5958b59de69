package handler

import "legalcheck/internal/person/models"

type PersonListResponse struct {
	Persons []*models.Person `json:"persons"`
	Count   int              `json:"count"`
}

func toPersonListResponse(list []*models.Person) PersonListResponse {
	if list == nil {
		list = []*models.Person{}
	}
	return PersonListResponse{Persons: list, Count: len(list)}
}
