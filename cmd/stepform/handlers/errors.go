package handlers

import "errors"

var errAnswersInvalid = errors.New("answers do not satisfy the definition")
