package repository

import "errors"

// сентинельные ошибки хранилища; бизнес-слой переводит их в BusinessError
var ErrNotFound = errors.New("запись не найдена")
var ErrAlreadyExists = errors.New("запись уже существует")
