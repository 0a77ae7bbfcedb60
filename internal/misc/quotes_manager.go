package misc

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand"

	log "github.com/sirupsen/logrus"
)

// Quote is one motivational training quote, served on /quote/random.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

type QuotesManager struct {
	Quotes []*Quote
}

// NewQuoteManager reads the quotes CSV: one TEXT;AUTHOR record per line.
func NewQuoteManager(quotesCsvReader *csv.Reader) (*QuotesManager, error) {
	qm := &QuotesManager{}

	log.Println("reading quotes CSV ...")

	quotesCsvReader.Comma = ';'
	for {
		record, err := quotesCsvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if len(record) != 2 {
			return nil, fmt.Errorf("record [%s] does not have 2 elements", record)
		}

		qm.Quotes = append(qm.Quotes, &Quote{
			Text:   record[0],
			Author: record[1],
		})
	}

	if len(qm.Quotes) == 0 {
		return nil, errors.New("no quotes read")
	}

	log.Printf("quotes CSV read %d quotes", len(qm.Quotes))

	return qm, nil
}

func (qm *QuotesManager) RandomQuote() *Quote {
	index := rand.Float64() * float64(len(qm.Quotes))
	return qm.Quotes[int(index)]
}
