package store

import "errors"

var ErrSlotFull = errors.New("slot full")
