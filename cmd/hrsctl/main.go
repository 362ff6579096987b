// hrsctl tareas de operación sobre el historial de comprobantes: migraciones, usuarios
// por defecto, vista previa de numeración, importación del padrón y exportación a Excel.
//
// Uso: go run ./cmd/hrsctl --help
package main

func main() {
	Execute()
}
