package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// TransactionStatus represents the status of a settlement transaction
type TransactionStatus int

const (
	TransactionStatusPending TransactionStatus = 0
	TransactionStatusPaid    TransactionStatus = 1
	TransactionStatusVoided  TransactionStatus = 2
)

func (s TransactionStatus) String() string {
	names := [...]string{"Pending", "Paid", "Voided"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Pending"
	}
	return names[s]
}

// ParseTransactionStatus converts a status name to its enum value.
func ParseTransactionStatus(s string) (TransactionStatus, error) {
	switch strings.ToLower(s) {
	case "pending":
		return TransactionStatusPending, nil
	case "paid":
		return TransactionStatusPaid, nil
	case "voided":
		return TransactionStatusVoided, nil
	}
	return TransactionStatusPending, fmt.Errorf("unknown transaction status %q", s)
}

func (s TransactionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *TransactionStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = TransactionStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = TransactionStatusPending
	case "Paid":
		*s = TransactionStatusPaid
	case "Voided":
		*s = TransactionStatusVoided
	}
	return nil
}

func (s TransactionStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *TransactionStatus) Scan(value interface{}) error {
	if value == nil {
		*s = TransactionStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = TransactionStatus(v)
	case int:
		*s = TransactionStatus(v)
	}
	return nil
}
