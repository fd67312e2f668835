package domain

import "errors"

var (
	// ErrConnection — хранилище недоступно или отклонило учётные данные подключения.
	ErrConnection = errors.New("store connection failed")
	// ErrValidation — входные данные отклонены до обращения к хранилищу.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials — не найден активный менеджер с такой парой логин/пароль.
	ErrInvalidCredentials = errors.New("invalid login or password")
	// ErrPersistence — хранилище отклонило запись, изменения откачены.
	ErrPersistence = errors.New("store rejected write")
	// ErrRead — ошибка чтения из хранилища.
	ErrRead = errors.New("store read failed")
	// ErrPartnerNotFound возвращается, если партнёр с указанным ID отсутствует.
	ErrPartnerNotFound = errors.New("partner not found")
	// ErrPartnerTypeNotFound — ссылка на несуществующий тип партнёра.
	ErrPartnerTypeNotFound = errors.New("partner type not found")
	// ErrManagerNotFound — в хранилище нет активного менеджера с таким логином.
	ErrManagerNotFound = errors.New("manager not found")
)

// IsReadFailure отличает сбой чтения от пустого результата.
func IsReadFailure(err error) bool {
	return errors.Is(err, ErrRead) || errors.Is(err, ErrConnection)
}

// IsNotFound сообщает, что запрошенная сущность отсутствует.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPartnerNotFound) ||
		errors.Is(err, ErrPartnerTypeNotFound) ||
		errors.Is(err, ErrManagerNotFound)
}
