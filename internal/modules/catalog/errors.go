package catalog

import "errors"

var ErrSlugTaken = errors.New("slug_taken")
