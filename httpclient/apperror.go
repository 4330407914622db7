package httpclient

import apperrors "github.com/Surya-sourav/glass/errors"

// ToAppError converts a transport error into an AppError for service.
// Auth failures become INVALID_API_KEY; anything that is not already an
// AppError becomes EXTERNAL_SERVICE_ERROR.
func ToAppError(service string, err error) error {
	if err == nil {
		return nil
	}
	if IsAuth(err) {
		return apperrors.InvalidAPIKey(service).WithCause(err)
	}
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	return apperrors.ExternalServiceError(service, err)
}
