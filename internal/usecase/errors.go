package usecase

import "errors"

var (
	ErrUnknownProvider     = errors.New("provedor de conversão desconhecido")
	ErrSettingsUnavailable = errors.New("settings indisponível")
)

// DomainError é um erro de regra de negócio: entrada inválida, provedor ou
// lead inexistente. Os handlers respondem 4xx com o Code.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError embrulha falhas de infraestrutura (banco, rede) sem expor detalhes ao cliente.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}
