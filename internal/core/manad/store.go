package manad

import "manad-service/internal/domain"

// Store acumula os registros de um único arquivo MANAD, na ordem de leitura.
type Store struct {
	transactions []domain.TransactionRecord
	descriptions map[string]string
}

// NewStore cria um Store vazio.
func NewStore() *Store {
	return &Store{descriptions: make(map[string]string)}
}

// AddTransaction appends a K300 record. Duplicates are kept.
func (s *Store) AddTransaction(record domain.TransactionRecord) {
	s.transactions = append(s.transactions, record)
}

// SetDescription registers a K150 record; a later record for the same code wins.
func (s *Store) SetDescription(record domain.CategoryDescription) {
	s.descriptions[record.CategoryCode] = record.Description
}

func (s *Store) Transactions() []domain.TransactionRecord {
	return s.transactions
}

func (s *Store) Descriptions() map[string]string {
	return s.descriptions
}

// Len returns the number of K300 records.
func (s *Store) Len() int {
	return len(s.transactions)
}
