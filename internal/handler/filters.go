package handler

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model"
)

const dateLayout = "2006-01-02"

var (
	errDateCombined  = errors.New("date cannot be combined with from or upTo")
	errInvalidDate   = errors.New("dates must be formatted as YYYY-MM-DD")
	errInvalidAmount = errors.New("min and max must be numbers")
)

// parseTransactionFilter reads from, upTo, date, min and max. Dates cover whole UTC days,
// so upTo becomes an exclusive bound at the start of the following day.
func parseTransactionFilter(query url.Values) (model.TransactionFilter, error) {
	var filter model.TransactionFilter

	date, from, upTo := query.Get("date"), query.Get("from"), query.Get("upTo")
	if date != "" {
		if from != "" || upTo != "" {
			return filter, errDateCombined
		}
		from, upTo = date, date
	}

	if from != "" {
		day, err := time.Parse(dateLayout, from)
		if err != nil {
			return filter, errInvalidDate
		}
		filter.From = &day
	}
	if upTo != "" {
		day, err := time.Parse(dateLayout, upTo)
		if err != nil {
			return filter, errInvalidDate
		}
		next := day.AddDate(0, 0, 1)
		filter.Before = &next
	}

	var err error
	if filter.MinAmount, err = parseAmount(query.Get("min")); err != nil {
		return filter, err
	}
	if filter.MaxAmount, err = parseAmount(query.Get("max")); err != nil {
		return filter, err
	}
	return filter, nil
}

func parseAmount(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errInvalidAmount
	}
	return &v, nil
}
