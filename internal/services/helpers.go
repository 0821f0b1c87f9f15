package services

import (
	"errors"
	"strconv"

	"github.com/AryanRajSingh/Project-Mini-LinkedIn-Community-Platform/internal/store"
)

// notFoundAs replaces store.ErrNotFound with the given domain error.
func notFoundAs(err error, replacement *Error) error {
	if errors.Is(err, store.ErrNotFound) {
		return replacement
	}
	return err
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
