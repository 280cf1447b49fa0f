package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID genera un identificador corto para entidades del negocio
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 6)
}
