package memory

import "fmt"

// fkViolation equivalente ao erro 23503 do PostgreSQL.
func fkViolation(constraint, id string) error {
	return fmt.Errorf("memory: violação de chave estrangeira %s (%s)", constraint, id)
}
