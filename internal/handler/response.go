package handler

import (
	"errors"
	"strconv"

	"go-ferreteria-api/pkg/logger"
	pkgerrors "go-ferreteria-api/pkg/errors"

	"github.com/gofiber/fiber/v2"
)

const (
	msgEndpointNotFound = "Endpoint no encontrado"
	msgInternal         = "Error interno del servidor"
	msgBodyRequired     = "Datos requeridos"
	msgInvalidJSON      = "JSON inválido"
	msgInvalidID        = "ID inválido"
)

// respondError writes typed errors with their mapped status. Anything else
// goes back up the chain to ErrorHandler, which logs it and answers 500.
func respondError(c *fiber.Ctx, err error) error {
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() == pkgerrors.CodeInternal {
		return err
	}
	status := pkgerrors.MetadataFor(typed.Code()).HTTPStatus
	return c.Status(status).JSON(fiber.Map{"error": typed.PublicMessage()})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// parseBody decodes a JSON body into out, rejecting empty payloads.
func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return pkgerrors.Validation(msgBodyRequired)
	}
	if err := c.BodyParser(out); err != nil {
		return pkgerrors.Validation(msgInvalidJSON)
	}
	return nil
}

func paramID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, pkgerrors.Validation(msgInvalidID)
	}
	return uint(id), nil
}

// queryUint reads an optional positive integer query parameter.
func queryUint(c *fiber.Ctx, key string) (*uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, pkgerrors.Validation("Parámetro inválido: " + key)
	}
	id := uint(v)
	return &id, nil
}

// ErrorHandler is the fiber fallback. Unknown routes get the generic 404;
// untyped errors are logged and never shown to the client.
func ErrorHandler(logg *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() != pkgerrors.CodeInternal {
			return respondError(c, typed)
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			switch {
			case fe.Code == fiber.StatusNotFound:
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": msgEndpointNotFound})
			case fe.Code < fiber.StatusInternalServerError:
				return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
			}
		}

		logg.Error(c.UserContext(), "unhandled request error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": msgInternal})
	}
}
