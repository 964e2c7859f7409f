package fleet

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	_ = validate.RegisterValidation("devicekind", validateDeviceKind)
}

func validateDeviceKind(fl validator.FieldLevel) bool {
	return DeviceKind(fl.Field().String()).Known()
}

// ValidateNode checks that a NodeSpec carries every field its device kind
// requires. The returned error names the offending field.
func ValidateNode(n NodeSpec) error {
	err := validate.Struct(n)
	if err == nil {
		return nil
	}

	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		if fe.Tag() == "devicekind" {
			return fmt.Errorf("node %q: unknown device kind %q (want local, ssh or managed)", n.HostName, n.Kind)
		}
		return fmt.Errorf("node %q: field %s is required for kind %q", n.HostName, fe.Field(), n.Kind)
	}
	return fmt.Errorf("node %q: %w", n.HostName, err)
}
