package db

import (
	"database/sql"
	"fmt"
	"time"

	"hvac-serwis-server/internal/models"
)

// ClientRepository defines data access for clients and their devices.
type ClientRepository interface {
	List() ([]models.Client, error)
	GetByID(id int64) (*models.Client, error)
	Create(client *models.Client) error
	TouchLastSms(deviceID int64, when time.Time) error
}

type clientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new ClientRepository.
func NewClientRepository(db *sql.DB) ClientRepository {
	return &clientRepository{db: db}
}

// List returns every client with its devices attached, in id order.
func (r *clientRepository) List() ([]models.Client, error) {
	rows, err := r.db.Query(`
		SELECT id, name, first_name, last_name, phone, is_custom
		FROM clients ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	clients := []models.Client{}
	index := map[int64]int{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		index[c.ID] = len(clients)
		clients = append(clients, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	devices, err := r.listDevices("", nil)
	if err != nil {
		return nil, err
	}
	for i := range devices {
		if pos, ok := index[devices[i].ClientID]; ok {
			clients[pos].Devices = append(clients[pos].Devices, devices[i])
		}
	}
	return clients, nil
}

// GetByID returns one client with devices, or sql.ErrNoRows.
func (r *clientRepository) GetByID(id int64) (*models.Client, error) {
	row := r.db.QueryRow(`
		SELECT id, name, first_name, last_name, phone, is_custom
		FROM clients WHERE id = ?`, id)
	c, err := scanClient(row)
	if err != nil {
		return nil, err
	}

	devices, err := r.listDevices("WHERE client_id = ?", []interface{}{id})
	if err != nil {
		return nil, err
	}
	c.Devices = devices
	return c, nil
}

// Create inserts a client and its devices, assigning generated ids.
func (r *clientRepository) Create(client *models.Client) error {
	if client == nil {
		return fmt.Errorf("client cannot be nil")
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var res sql.Result
	if client.ID > 0 {
		res, err = tx.Exec(`
			INSERT INTO clients (id, name, first_name, last_name, phone, is_custom)
			VALUES (?, ?, ?, ?, ?, ?)`,
			client.ID, client.Name, client.FirstName, client.LastName,
			client.Phone, client.Kind == models.ClientKindLead)
	} else {
		res, err = tx.Exec(`
			INSERT INTO clients (name, first_name, last_name, phone, is_custom)
			VALUES (?, ?, ?, ?, ?)`,
			client.Name, client.FirstName, client.LastName,
			client.Phone, client.Kind == models.ClientKindLead)
	}
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	if client.ID == 0 {
		if client.ID, err = res.LastInsertId(); err != nil {
			return err
		}
	}

	for i := range client.Devices {
		d := &client.Devices[i]
		d.ClientID = client.ID
		var lastSms interface{}
		if d.LastSms != nil {
			lastSms = d.LastSms.Unix()
		}
		res, err := tx.Exec(`
			INSERT INTO devices (client_id, device_type, device_name, address,
				ulica, nr_domu, nr_lokalu, kod_pocztowy, miejscowosc, notes,
				installation_date, next_inspection_date, service_confirmed, last_sms)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			d.ClientID, string(d.DeviceType), d.DeviceName, d.Address,
			d.Ulica, d.NrDomu, d.NrLokalu, d.KodPocztowy, d.Miejscowosc, d.Notes,
			dateArg(d.InstallationDate), dateArg(d.NextInspectionDate),
			d.ServiceConfirmed, lastSms)
		if err != nil {
			return fmt.Errorf("failed to create device: %w", err)
		}
		if d.ID, err = res.LastInsertId(); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// TouchLastSms records the timestamp of the latest SMS sent for a device.
func (r *clientRepository) TouchLastSms(deviceID int64, when time.Time) error {
	res, err := r.db.Exec(`UPDATE devices SET last_sms = ? WHERE id = ?`,
		when.Unix(), deviceID)
	if err != nil {
		return fmt.Errorf("failed to record last SMS: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("device %d not found", deviceID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClient(row rowScanner) (*models.Client, error) {
	var (
		c        models.Client
		name     sql.NullString
		first    sql.NullString
		last     sql.NullString
		phone    sql.NullString
		isCustom bool
	)
	if err := row.Scan(&c.ID, &name, &first, &last, &phone, &isCustom); err != nil {
		return nil, err
	}
	c.Name = name.String
	c.FirstName = first.String
	c.LastName = last.String
	c.Phone = phone.String
	c.Kind = models.ClientKindRegistered
	if isCustom {
		c.Kind = models.ClientKindLead
	}
	c.Devices = []models.Device{}
	return &c, nil
}

func (r *clientRepository) listDevices(where string, args []interface{}) ([]models.Device, error) {
	query := `
		SELECT id, client_id, device_type, device_name, address,
			ulica, nr_domu, nr_lokalu, kod_pocztowy, miejscowosc, notes,
			installation_date, next_inspection_date, service_confirmed, last_sms
		FROM devices ` + where + ` ORDER BY client_id, id`
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	defer rows.Close()

	var devices []models.Device
	for rows.Next() {
		var (
			d          models.Device
			deviceType string
			name       sql.NullString
			address    sql.NullString
			ulica      sql.NullString
			nrDomu     sql.NullString
			nrLokalu   sql.NullString
			kod        sql.NullString
			miasto     sql.NullString
			notes      sql.NullString
			installed  models.Date
			inspection models.Date
			lastSms    sql.NullInt64
		)
		err := rows.Scan(&d.ID, &d.ClientID, &deviceType, &name, &address,
			&ulica, &nrDomu, &nrLokalu, &kod, &miasto, &notes,
			&installed, &inspection, &d.ServiceConfirmed, &lastSms)
		if err != nil {
			return nil, err
		}
		d.DeviceType = models.DeviceType(deviceType)
		d.DeviceName = name.String
		d.Address = address.String
		d.Ulica = ulica.String
		d.NrDomu = nrDomu.String
		d.NrLokalu = nrLokalu.String
		d.KodPocztowy = kod.String
		d.Miejscowosc = miasto.String
		d.Notes = notes.String
		if !installed.IsZero() {
			v := installed
			d.InstallationDate = &v
		}
		if !inspection.IsZero() {
			v := inspection
			d.NextInspectionDate = &v
		}
		if lastSms.Valid {
			t := time.Unix(lastSms.Int64, 0).UTC()
			d.LastSms = &t
		}
		devices = append(devices, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return devices, nil
}

func dateArg(d *models.Date) interface{} {
	if d == nil || d.IsZero() {
		return nil
	}
	return d.String()
}
