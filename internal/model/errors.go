package model

import "errors"

var (
	ErrInvalidRule    = errors.New("model: invalid rule")
	ErrInvalidNeuron  = errors.New("model: invalid neuron")
	ErrInvalidID      = errors.New("model: invalid neuron id")
	ErrDuplicateID    = errors.New("model: duplicate neuron id")
	ErrUnknownNeuron  = errors.New("model: unknown neuron")
	ErrInvalidSynapse = errors.New("model: invalid synapse")
)
