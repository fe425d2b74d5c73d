package forecast

import "fmt"

// InputError сообщает о неверных входных параметрах запроса прогноза.
type InputError struct {
	Field string
	Value string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

// UpstreamError сообщает о сбое чтения из хранилища операций.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("ledger %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// OracleError сообщает о сбое внешнего прогнозного сервиса или о непригодном ответе.
type OracleError struct {
	Err error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("forecast oracle: %v", e.Err)
}

func (e *OracleError) Unwrap() error {
	return e.Err
}
