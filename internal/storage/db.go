package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"cmedimport/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS imports (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  fileName TEXT NOT NULL,
  format TEXT NOT NULL,
  referenceDate TEXT,
  total INTEGER NOT NULL,
  parsed INTEGER NOT NULL,
  errors INTEGER NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS medications (
  codigo_ggrem TEXT PRIMARY KEY,
  substancia TEXT NOT NULL,
  cnpj TEXT,
  laboratorio TEXT,
  registro TEXT,
  ean_1 TEXT,
  ean_2 TEXT,
  ean_3 TEXT,
  produto TEXT NOT NULL,
  apresentacao TEXT,
  classe_terapeutica TEXT,
  tipo_produto TEXT,
  regime_preco TEXT,
  restricao_hospitalar INTEGER NOT NULL DEFAULT 0,
  cap INTEGER NOT NULL DEFAULT 0,
  confaz_87 INTEGER NOT NULL DEFAULT 0,
  icms_0 INTEGER NOT NULL DEFAULT 0,
  analise_recursal INTEGER NOT NULL DEFAULT 0,
  lista_concessao INTEGER NOT NULL DEFAULT 0,
  tarja TEXT,
  comercializacao TEXT,
  precos_json TEXT NOT NULL,
  importId INTEGER NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(importId) REFERENCES imports(id)
);
CREATE INDEX IF NOT EXISTS idx_medications_produto ON medications(produto);
CREATE INDEX IF NOT EXISTS idx_medications_ean1 ON medications(ean_1);

CREATE TABLE IF NOT EXISTS import_errors (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  importId INTEGER NOT NULL,
  row INTEGER NOT NULL,
  message TEXT NOT NULL,
  dataJson TEXT,
  FOREIGN KEY(importId) REFERENCES imports(id)
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// RecordImport persists one import run in a single transaction: the run
// row, an upsert per parsed medication and the collected row errors.
func (d *DB) RecordImport(fileName, format string, res internal.ImportResult) (int64, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.Exec(`
INSERT INTO imports (fileName, format, referenceDate, total, parsed, errors)
VALUES (?, ?, ?, ?, ?, ?)
`, fileName, format, res.ReferenceDate, res.Stats.Total, res.Stats.Parsed, res.Stats.Errors)
	if err != nil {
		return 0, err
	}
	importID, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(`
INSERT INTO medications (
  codigo_ggrem, substancia, cnpj, laboratorio, registro,
  ean_1, ean_2, ean_3, produto, apresentacao,
  classe_terapeutica, tipo_produto, regime_preco,
  restricao_hospitalar, cap, confaz_87, icms_0, analise_recursal, lista_concessao,
  tarja, comercializacao, precos_json, importId, updatedAt
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(codigo_ggrem) DO UPDATE SET
  substancia=excluded.substancia,
  cnpj=excluded.cnpj,
  laboratorio=excluded.laboratorio,
  registro=excluded.registro,
  ean_1=excluded.ean_1,
  ean_2=excluded.ean_2,
  ean_3=excluded.ean_3,
  produto=excluded.produto,
  apresentacao=excluded.apresentacao,
  classe_terapeutica=excluded.classe_terapeutica,
  tipo_produto=excluded.tipo_produto,
  regime_preco=excluded.regime_preco,
  restricao_hospitalar=excluded.restricao_hospitalar,
  cap=excluded.cap,
  confaz_87=excluded.confaz_87,
  icms_0=excluded.icms_0,
  analise_recursal=excluded.analise_recursal,
  lista_concessao=excluded.lista_concessao,
  tarja=excluded.tarja,
  comercializacao=excluded.comercializacao,
  precos_json=excluded.precos_json,
  importId=excluded.importId,
  updatedAt=CURRENT_TIMESTAMP
`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, rec := range res.Rows {
		precosJSON, _ := json.Marshal(rec.Precos)
		if _, err := stmt.Exec(
			rec.CodigoGGREM, rec.Substancia, rec.CNPJ, rec.Laboratorio, rec.Registro,
			rec.EAN1, rec.EAN2, rec.EAN3, rec.Produto, rec.Apresentacao,
			rec.ClasseTerapeutica, rec.TipoProduto, rec.RegimePreco,
			boolToInt(rec.RestricaoHospitalar), boolToInt(rec.CAP), boolToInt(rec.Confaz87),
			boolToInt(rec.ICMSZero), boolToInt(rec.AnaliseRecursal), boolToInt(rec.ListaConcessao),
			rec.Tarja, rec.Comercializacao, string(precosJSON), importID,
		); err != nil {
			return 0, err
		}
	}

	for _, impErr := range res.Errors {
		var dataJSON *string
		if impErr.Data != nil {
			raw, _ := json.Marshal(impErr.Data)
			s := string(raw)
			dataJSON = &s
		}
		if _, err := tx.Exec(`
INSERT INTO import_errors (importId, row, message, dataJson) VALUES (?, ?, ?, ?)
`, importID, impErr.Row, impErr.Message, dataJSON); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return importID, nil
}

const medicationColumns = `
codigo_ggrem, substancia, cnpj, laboratorio, registro,
ean_1, ean_2, ean_3, produto, apresentacao,
classe_terapeutica, tipo_produto, regime_preco,
restricao_hospitalar, cap, confaz_87, icms_0, analise_recursal, lista_concessao,
tarja, comercializacao, precos_json`

func (d *DB) GetMedication(codigoGGREM string) (*internal.ParsedRecord, error) {
	row := d.conn.QueryRow(`SELECT `+medicationColumns+` FROM medications WHERE codigo_ggrem = ?`, codigoGGREM)
	return scanMedication(row)
}

func (d *DB) FindByEAN(ean string) (*internal.ParsedRecord, error) {
	row := d.conn.QueryRow(`SELECT `+medicationColumns+` FROM medications WHERE ean_1 = ? OR ean_2 = ? OR ean_3 = ?`, ean, ean, ean)
	return scanMedication(row)
}

func scanMedication(row *sql.Row) (*internal.ParsedRecord, error) {
	var rec internal.ParsedRecord
	var restricao, capFlag, confaz, icms0, analise, lista int
	var precosJSON string
	err := row.Scan(
		&rec.CodigoGGREM, &rec.Substancia, &rec.CNPJ, &rec.Laboratorio, &rec.Registro,
		&rec.EAN1, &rec.EAN2, &rec.EAN3, &rec.Produto, &rec.Apresentacao,
		&rec.ClasseTerapeutica, &rec.TipoProduto, &rec.RegimePreco,
		&restricao, &capFlag, &confaz, &icms0, &analise, &lista,
		&rec.Tarja, &rec.Comercializacao, &precosJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rec.RestricaoHospitalar = restricao != 0
	rec.CAP = capFlag != 0
	rec.Confaz87 = confaz != 0
	rec.ICMSZero = icms0 != 0
	rec.AnaliseRecursal = analise != 0
	rec.ListaConcessao = lista != 0
	if err := json.Unmarshal([]byte(precosJSON), &rec.Precos); err != nil {
		return nil, fmt.Errorf("precos_json inválido para %s: %w", rec.CodigoGGREM, err)
	}
	return &rec, nil
}

func (d *DB) ListImports(limit int) ([]internal.ImportRun, error) {
	rows, err := d.conn.Query(`
SELECT id, fileName, format, referenceDate, total, parsed, errors, createdAt
FROM imports ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.ImportRun
	for rows.Next() {
		var run internal.ImportRun
		if err := rows.Scan(&run.ID, &run.FileName, &run.Format, &run.ReferenceDate,
			&run.Total, &run.Parsed, &run.Errors, &run.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func (d *DB) GetImportErrors(importID int64) ([]internal.ImportError, error) {
	rows, err := d.conn.Query(`
SELECT row, message, dataJson FROM import_errors WHERE importId = ? ORDER BY row ASC`, importID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.ImportError
	for rows.Next() {
		var impErr internal.ImportError
		var dataJSON *string
		if err := rows.Scan(&impErr.Row, &impErr.Message, &dataJSON); err != nil {
			return nil, err
		}
		if dataJSON != nil {
			_ = json.Unmarshal([]byte(*dataJSON), &impErr.Data)
		}
		out = append(out, impErr)
	}
	return out, rows.Err()
}

func (d *DB) CountMedications() (int, error) {
	var count int
	err := d.conn.QueryRow(`SELECT COUNT(*) FROM medications`).Scan(&count)
	return count, err
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
