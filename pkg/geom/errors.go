package geom

import "errors"

// ErrSingular is returned by the checked inverse and solve variants when the
// determinant is zero within tolerance.
var ErrSingular = errors.New("geom: singular matrix")
